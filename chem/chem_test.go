/*
 * chem_test.go, part of godock.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"strings"
	"testing"
)

//A small 2-residue fragment, chain A: Asp 87 (backbone + CB + side
//chain) followed by Gly 88.
const testPDB = `ATOM      1  N   ASP A  87      11.104  13.207   9.002  1.00 20.00           N
ATOM      2  CA  ASP A  87      12.560  13.329   9.000  1.00 20.00           C
ATOM      3  C   ASP A  87      13.059  14.512   9.822  1.00 20.00           C
ATOM      4  O   ASP A  87      12.313  15.441  10.131  1.00 20.00           O
ATOM      5  CB  ASP A  87      13.104  12.041   9.617  1.00 20.00           C
ATOM      6  CG  ASP A  87      14.599  11.878   9.410  1.00 20.00           C
ATOM      7  OD1 ASP A  87      15.204  12.741   8.741  1.00 20.00           O
ATOM      8  OD2 ASP A  87      15.182  10.898   9.921  1.00 20.00           O
ATOM      9  N   GLY A  88      14.354  14.520  10.130  1.00 20.00           N
ATOM     10  CA  GLY A  88      14.935  15.606  10.905  1.00 20.00           C
ATOM     11  C   GLY A  88      16.428  15.420  11.107  1.00 20.00           C
ATOM     12  O   GLY A  88      17.009  14.411  10.705  1.00 20.00           O
END
`

func readTestStructure(Te *testing.T) *Structure {
	mol, err := PDBRead(strings.NewReader(testPDB))
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func TestPDBRead(Te *testing.T) {
	mol := readTestStructure(Te)
	if mol.Len() != 12 {
		Te.Fatalf("Wrong number of atoms read: %d", mol.Len())
	}
	at := mol.Atom(1)
	if at.Name != "CA" || at.MolName != "ASP" || at.MolName1 != 'D' || at.Chain != "A" || at.MolID != 87 {
		Te.Errorf("Wrong atom data: %+v", at)
	}
	v := mol.Coords.Vec(1)
	if v != [3]float64{12.560, 13.329, 9.000} {
		Te.Errorf("Wrong coordinates: %v", v)
	}
}

func TestPDBRoundTrip(Te *testing.T) {
	mol := readTestStructure(Te)
	var b strings.Builder
	if err := PDBWrite(&b, mol); err != nil {
		Te.Fatal(err)
	}
	mol2, err := PDBRead(strings.NewReader(b.String()))
	if err != nil {
		Te.Fatal(err)
	}
	if mol2.Len() != mol.Len() {
		Te.Fatalf("Atom count changed after round trip: %d vs %d", mol2.Len(), mol.Len())
	}
	for i := 0; i < mol.Len(); i++ {
		if mol.Atom(i).Name != mol2.Atom(i).Name || mol.Coords.Vec(i) != mol2.Coords.Vec(i) {
			Te.Errorf("Atom %d changed after round trip", i)
		}
	}
}

func TestResidueLookup(Te *testing.T) {
	mol := readTestStructure(Te)
	idx := mol.Residue("A", 87)
	if len(idx) != 8 {
		Te.Errorf("Wrong atom count for residue 87: %d", len(idx))
	}
	if len(mol.Residue("A", 999)) != 0 {
		Te.Error("Found a residue that should not exist")
	}
	if len(mol.Residue("B", 87)) != 0 {
		Te.Error("Found a residue in a chain that should not exist")
	}
}

func TestBackboneIndices(Te *testing.T) {
	mol := readTestStructure(Te)
	bb := mol.BackboneIndices()
	if len(bb) != 6 { //N, CA, C for each of the 2 residues
		Te.Errorf("Wrong backbone atom count: %d", len(bb))
	}
	for _, i := range bb {
		if !IsBackbone(mol.Atom(i).Name) {
			Te.Errorf("Non-backbone atom selected: %s", mol.Atom(i).Name)
		}
	}
}

func TestCopyIsDeep(Te *testing.T) {
	mol := readTestStructure(Te)
	cp := mol.Copy()
	cp.Atoms[0].Name = "XX"
	cp.Coords.Set(0, 0, 999)
	if mol.Atom(0).Name == "XX" || mol.Coords.At(0, 0) == 999 {
		Te.Error("Copy is not deep")
	}
}

func TestLetterCodes(Te *testing.T) {
	if OneLetter("ASP") != 'D' || ThreeLetter('G') != "GLY" {
		Te.Error("Wrong residue code conversion")
	}
	if OneLetter("XXX") != 0 {
		Te.Error("Expected 0 for unknown residue name")
	}
}
