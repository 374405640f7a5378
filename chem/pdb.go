/*
 * pdb.go, part of godock.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"godock/v3"
)

//PDBRead reads a PDB from an io.Reader and returns a Structure. Only the
//first model is read; records other than ATOM, HETATM, ENDMDL and END
//are skipped. Alternate locations other than ' ' and 'A' are dropped.
func PDBRead(pdb io.Reader) (*Structure, error) {
	buf := bufio.NewReader(pdb)
	var atoms []*Atom
	var coords []float64
	for {
		line, err := buf.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			break
		}
		if strings.HasPrefix(line, "ENDMDL") || strings.HasPrefix(line, "END") {
			break
		}
		if !isAtomRecord(line) {
			if err == io.EOF {
				break
			}
			continue
		}
		at, x, y, z, perr := parsePDBAtom(line)
		if perr != nil {
			return nil, errDecorate(perr, "PDBRead")
		}
		if at != nil {
			atoms = append(atoms, at)
			coords = append(coords, x, y, z)
		}
		if err == io.EOF {
			break
		}
	}
	if len(atoms) == 0 {
		return nil, Error{ErrNoAtoms, "", []string{"PDBRead"}, true}
	}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	return &Structure{Atoms: atoms, Coords: m}, nil
}

//PDBFileRead reads the PDB file pdbname and returns a Structure.
func PDBFileRead(pdbname string) (*Structure, error) {
	f, err := os.Open(pdbname)
	if err != nil {
		return nil, Error{ErrCantOpen, pdbname, []string{"os.Open", "PDBFileRead"}, true}
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead "+pdbname)
	}
	return mol, nil
}

//parsePDBAtom parses one ATOM/HETATM record. It returns a nil atom (and
//no error) for alternate locations that should be dropped.
func parsePDBAtom(line string) (*Atom, float64, float64, float64, error) {
	//Columns follow the PDB fixed format, 0-based here.
	if len(line) < 54 {
		return nil, 0, 0, 0, Error{ErrBadPDBLine + ": " + strings.TrimRight(line, "\n"), "", []string{"parsePDBAtom"}, true}
	}
	alt := line[16]
	if alt != ' ' && alt != 'A' {
		return nil, 0, 0, 0, nil
	}
	at := new(Atom)
	at.Het = strings.HasPrefix(line, "HETATM")
	at.ID, _ = strconv.Atoi(strings.TrimSpace(line[6:11]))
	at.Name = strings.TrimSpace(line[12:16])
	at.MolName = strings.TrimSpace(line[17:20])
	at.MolName1 = three2OneLetter[at.MolName]
	at.Chain = strings.TrimSpace(line[21:22])
	var err error
	at.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, 0, 0, 0, Error{ErrBadPDBLine + ": bad residue number: " + strings.TrimRight(line, "\n"), "", []string{"parsePDBAtom"}, true}
	}
	x, errx := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	y, erry := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	z, errz := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if errx != nil || erry != nil || errz != nil {
		return nil, 0, 0, 0, Error{ErrBadPDBLine + ": bad coordinates: " + strings.TrimRight(line, "\n"), "", []string{"parsePDBAtom"}, true}
	}
	if len(line) >= 60 {
		at.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 66 {
		at.Bfactor, _ = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	}
	if len(line) >= 78 {
		at.Symbol = strings.TrimSpace(line[76:78])
	}
	if at.Symbol == "" {
		at.Symbol = symbolFromName(at.Name)
	}
	return at, x, y, z, nil
}

//symbolFromName guesses a chemical element symbol from a PDB atom name.
//It only deals with the common bio-elements; based on AMBER names.
func symbolFromName(name string) string {
	if name == "" {
		return ""
	}
	if len(name) == 4 || name[0] == 'H' {
		return "H"
	}
	switch name {
	case "CL":
		return "Cl"
	case "NA":
		return "Na"
	case "MG":
		return "Mg"
	case "ZN":
		return "Zn"
	case "FE":
		return "Fe"
	case "SE":
		return "Se"
	}
	switch name[0] {
	case 'C', 'N', 'O', 'P', 'S':
		return name[:1]
	}
	return name[:1]
}

//PDBWrite writes a Structure as PDB to the given io.Writer.
func PDBWrite(out io.Writer, S *Structure) error {
	if S == nil || S.Coords == nil {
		return Error{ErrNilData, "", []string{"PDBWrite"}, true}
	}
	bw := bufio.NewWriter(out)
	prevchain := ""
	for i, at := range S.Atoms {
		if prevchain != "" && at.Chain != prevchain && !at.Het {
			fmt.Fprintln(bw, "TER")
		}
		prevchain = at.Chain
		record := "ATOM  "
		if at.Het {
			record = "HETATM"
		}
		name := at.Name
		if len(name) < 4 {
			name = " " + name
		}
		v := S.Coords.Vec(i)
		_, err := fmt.Fprintf(bw, "%s%5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
			record, at.ID, name, at.MolName, at.Chain, at.MolID, v[0], v[1], v[2], at.Occupancy, at.Bfactor, at.Symbol)
		if err != nil {
			return Error{"godock/chem: failed to write PDB record: " + err.Error(), "", []string{"PDBWrite"}, true}
		}
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

//PDBFileWrite writes a Structure to the PDB file pdbname.
func PDBFileWrite(pdbname string, S *Structure) error {
	f, err := os.Create(pdbname)
	if err != nil {
		return Error{ErrCantOpen, pdbname, []string{"os.Create", "PDBFileWrite"}, true}
	}
	defer f.Close()
	if err := PDBWrite(f, S); err != nil {
		return errDecorate(err, "PDBFileWrite "+pdbname)
	}
	return nil
}
