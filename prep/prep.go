/*
 * prep.go, part of godock.
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

//Package prep converts structures to the PDBQT format the docking
//engines consume. Protonation state and partial charges are always
//requested explicitly; the toolkit's defaults are never relied on.
package prep

import (
	"context"
	"fmt"
	"os"
	"strings"

	"godock/chem"
)

//ChargeModel selects the partial-charge assignment scheme.
type ChargeModel string

const (
	Gasteiger ChargeModel = "gasteiger"
	EEM       ChargeModel = "eem"
	NoCharges ChargeModel = "none"
)

//Options control one conversion. Rigid marks receptor preparation
//(no rotatable bonds in the output).
type Options struct {
	PH           float64
	AddHydrogens bool
	ChargeModel  ChargeModel
	Rigid        bool
}

//DefaultOptions returns physiological-pH preparation with Gasteiger
//charges.
func DefaultOptions() Options {
	return Options{PH: 7.4, AddHydrogens: true, ChargeModel: Gasteiger}
}

//Converter is the boundary to the chemistry toolkit.
type Converter interface {
	Name() string
	Available() bool
	Convert(ctx context.Context, in, out string, o Options) error
}

//Receptor prepares a receptor PDB for docking and returns the PDBQT
//path.
func Receptor(ctx context.Context, c Converter, pdb string, o Options) (string, error) {
	o.Rigid = true
	out := pdbqtName(pdb)
	if err := c.Convert(ctx, pdb, out, o); err != nil {
		return "", errDecorate(err, "Receptor")
	}
	if err := ValidatePDBQT(out); err != nil {
		return "", errDecorate(err, "Receptor")
	}
	return out, nil
}

//Ligand prepares a ligand PDB for docking, with rotatable bonds kept
//flexible, and returns the PDBQT path.
func Ligand(ctx context.Context, c Converter, pdb string, o Options) (string, error) {
	o.Rigid = false
	out := pdbqtName(pdb)
	if err := c.Convert(ctx, pdb, out, o); err != nil {
		return "", errDecorate(err, "Ligand")
	}
	if err := ValidatePDBQT(out); err != nil {
		return "", errDecorate(err, "Ligand")
	}
	return out, nil
}

func pdbqtName(pdb string) string {
	return strings.TrimSuffix(pdb, ".pdb") + ".pdbqt"
}

//ValidatePDBQT runs basic sanity checks on a converted file: it must
//exist, be non-empty and contain atom records.
func ValidatePDBQT(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return Error{ErrBadPDBQT + ": " + err.Error(), []string{"ValidatePDBQT"}, true}
	}
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return Error{fmt.Sprintf("%s: %s is empty", ErrBadPDBQT, path), []string{"ValidatePDBQT"}, true}
	}
	if !strings.Contains(text, "ATOM") && !strings.Contains(text, "HETATM") {
		return Error{fmt.Sprintf("%s: %s has no atom records", ErrBadPDBQT, path), []string{"ValidatePDBQT"}, true}
	}
	return nil
}

//ExtractLigand returns a new structure holding only the first instance
//of the named hetero residue, so multi-copy crystal structures (the
//same inhibitor bound in two chains) don't crash the ligand
//preparation. The first matching chain+residue wins.
func ExtractLigand(s *chem.Structure, resname string) (*chem.Structure, error) {
	resname = strings.ToUpper(strings.TrimSpace(resname))
	chain := ""
	resid := 0
	found := false
	for i := 0; i < s.Len(); i++ {
		at := s.Atom(i)
		if at.Het && at.MolName == resname {
			chain, resid, found = at.Chain, at.MolID, true
			break
		}
	}
	if !found {
		return nil, Error{fmt.Sprintf("%s: %s", ErrLigandNotFound, resname), []string{"ExtractLigand"}, true}
	}
	var idx []int
	for i := 0; i < s.Len(); i++ {
		at := s.Atom(i)
		if at.Het && at.MolName == resname && at.Chain == chain && at.MolID == resid {
			idx = append(idx, i)
		}
	}
	lig, err := s.SomeAtoms(idx)
	if err != nil {
		return nil, errDecorate(err, "ExtractLigand")
	}
	return lig, nil
}
