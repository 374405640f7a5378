/*
 * chem.go, part of godock.
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

//Package chem provides atom and structure types for protein receptors and
//small-molecule ligands, plus reading and writing of PDB files and a few
//geometric helpers. Structures are treated as immutable values: every
//operation that changes a structure returns a new one.
package chem

import (
	"fmt"

	"godock/v3"
)

//Atom contains the per-atom data read from a structure file, except for
//the coordinates, which live in a separate matrix.
type Atom struct {
	Name      string //PDB atom name, e.g. "CA"
	ID        int    //atom serial
	MolName   string //3-letter residue name
	MolName1  byte   //1-letter residue name, 0 if not a standard residue
	MolID     int    //residue number
	Chain     string
	Symbol    string
	Occupancy float64
	Bfactor   float64
	Het       bool //is this a HETATM record?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	N := *A
	return &N
}

//Structure is a set of atoms and their cartesian coordinates. The
//pipeline treats structures as immutable: stages return new Structures
//and never edit their input in place.
type Structure struct {
	Atoms  []*Atom
	Coords *v3.Matrix
}

//NewStructure builds a Structure from atoms and coordinates. It returns
//an error if either is nil or if their lengths don't match.
func NewStructure(atoms []*Atom, coords *v3.Matrix) (*Structure, error) {
	if atoms == nil {
		return nil, Error{ErrNilData, "", []string{"NewStructure"}, true}
	}
	if coords == nil {
		return nil, Error{ErrNilData, "", []string{"NewStructure"}, true}
	}
	if len(atoms) != coords.NVecs() {
		return nil, Error{fmt.Sprintf("%s: %d atoms, %d coordinates", ErrInconsistent, len(atoms), coords.NVecs()), "", []string{"NewStructure"}, true}
	}
	return &Structure{Atoms: atoms, Coords: coords}, nil
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Atom returns the atom at index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() {
		panic("Structure: Requested Atom out of bounds")
	}
	return S.Atoms[i]
}

//Copy returns a deep copy of the structure, atoms and coordinates.
func (S *Structure) Copy() *Structure {
	N := new(Structure)
	N.Atoms = make([]*Atom, S.Len())
	for k, v := range S.Atoms {
		N.Atoms[k] = v.Copy()
	}
	N.Coords = S.Coords.Copy()
	return N
}

//Residue returns the indices of the atoms belonging to the residue
//number resid in the given chain, in file order. The slice is empty if
//no such residue exists.
func (S *Structure) Residue(chain string, resid int) []int {
	var ret []int
	for i, at := range S.Atoms {
		if at.Chain == chain && at.MolID == resid && !at.Het {
			ret = append(ret, i)
		}
	}
	return ret
}

//SomeAtoms returns a new Structure with the atoms at the given indices,
//in order. Atoms are deep-copied.
func (S *Structure) SomeAtoms(indexes []int) (*Structure, error) {
	coords, err := S.Coords.SomeVecs(indexes)
	if err != nil {
		return nil, errDecorate(err, "SomeAtoms")
	}
	atoms := make([]*Atom, len(indexes))
	for k, j := range indexes {
		if j < 0 || j >= S.Len() {
			return nil, Error{fmt.Sprintf("Atom requested (position %d, value %d) out of range", k, j), "", []string{"SomeAtoms"}, true}
		}
		atoms[k] = S.Atoms[j].Copy()
	}
	return &Structure{Atoms: atoms, Coords: coords}, nil
}

//backboneNames are the three canonical per-residue anchor atoms used for
//backbone selections and restraints.
var backboneNames = map[string]bool{"N": true, "CA": true, "C": true}

//IsBackbone reports whether name is one of the canonical backbone anchor
//atom names (N, CA, C).
func IsBackbone(name string) bool {
	return backboneNames[name]
}

//BackboneIndices returns the indices of all backbone anchor atoms
//(N, CA, C) of every protein residue, in file order.
func (S *Structure) BackboneIndices() []int {
	var ret []int
	for i, at := range S.Atoms {
		if !at.Het && IsBackbone(at.Name) {
			ret = append(ret, i)
		}
	}
	return ret
}

//A map between 3-letter names for amino acid residues and the
//corresponding 1-letter names.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"GLU": 'E',
}

var one2ThreeLetter = func() map[byte]string {
	m := make(map[byte]string, len(three2OneLetter))
	for k, v := range three2OneLetter {
		m[v] = k
	}
	m['U'] = "SEC"
	return m
}()

//OneLetter returns the 1-letter code for a 3-letter residue name, or 0
//if the name is not a standard amino acid.
func OneLetter(resname string) byte {
	return three2OneLetter[resname]
}

//ThreeLetter returns the 3-letter name for a 1-letter residue code, or
//the empty string if the code is not a standard amino acid.
func ThreeLetter(code byte) string {
	return one2ThreeLetter[code]
}
