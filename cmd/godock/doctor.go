/*
 * doctor.go, part of godock.
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
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"godock/prep"
	"godock/relax"
	"godock/score"
)

type collaborator struct {
	name      string
	mandatory bool
	available func() bool
}

//doctor reports which external collaborators are installed. The
//pipeline runs with any subset, but the mandatory ones must be there.
func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "check the external programs the pipeline depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []collaborator{
				{"vina (docking engine)", true, score.NewVina().Available},
				{"obabel (format conversion)", true, prep.NewObabel().Available},
				{"gnina (optional rescoring)", false, score.NewGnina().Available},
				{"rf_score (optional rescoring)", false, score.NewRFScore().Available},
				{"openmm-minimize (optional relaxation)", false, relax.NewDriver().Available},
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			missingMandatory := false
			for _, c := range checks {
				status := "ok"
				if !c.available() {
					if c.mandatory {
						status = "MISSING (required)"
						missingMandatory = true
					} else {
						status = "missing (optional)"
					}
				}
				fmt.Fprintf(w, "%s\t%s\n", c.name, status)
			}
			w.Flush()
			if missingMandatory {
				return fmt.Errorf("mandatory external programs are missing")
			}
			return nil
		},
	}
}
