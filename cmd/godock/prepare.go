/*
 * prepare.go, part of godock.
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

package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"godock/chem"
	"godock/mutate"
	"godock/prep"
)

//prepare applies a mutation and/or converts a structure without
//docking, for inspecting intermediates or feeding other tools.
func newPrepareCmd() *cobra.Command {
	var (
		structure string
		mutation  string
		out       string
		convert   bool
		receptor  bool
		ph        float64
	)
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "mutate and/or convert a structure without docking",
		RunE: func(cmd *cobra.Command, args []string) error {
			if structure == "" {
				return usagef("--structure is required")
			}
			mol, err := chem.PDBFileRead(structure)
			if err != nil {
				return usageError{err}
			}
			outPDB := structure
			if mutation != "" {
				sp, err := mutate.ParseSpec(mutation)
				if err != nil {
					return usageError{err}
				}
				mol, err = mutate.Apply(cmd.Context(), mol, sp, mutate.Truncate{}, logger)
				if err != nil {
					return err
				}
				outPDB = out
				if outPDB == "" {
					base := strings.TrimSuffix(structure, filepath.Ext(structure))
					outPDB = base + "_mutant.pdb"
				}
				if err := chem.PDBFileWrite(outPDB, mol); err != nil {
					return err
				}
				logger.Info("mutant written", zap.String("path", outPDB))
			}
			if convert {
				conv := prep.NewObabel()
				o := prep.DefaultOptions()
				o.PH = ph
				var pdbqt string
				if receptor {
					pdbqt, err = prep.Receptor(cmd.Context(), conv, outPDB, o)
				} else {
					pdbqt, err = prep.Ligand(cmd.Context(), conv, outPDB, o)
				}
				if err != nil {
					return err
				}
				logger.Info("PDBQT written", zap.String("path", pdbqt))
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&structure, "structure", "s", "", "input PDB file (required)")
	fl.StringVarP(&mutation, "mutation", "m", "", "point mutation, e.g. A:87:D:G")
	fl.StringVarP(&out, "out", "o", "", "output PDB path for the mutant")
	fl.BoolVar(&convert, "convert", false, "also convert the result to PDBQT")
	fl.BoolVar(&receptor, "receptor", false, "convert as rigid receptor rather than ligand")
	fl.Float64Var(&ph, "ph", 7.4, "protonation pH for conversion")
	return cmd
}
