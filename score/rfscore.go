/*
 * rfscore.go, part of godock.
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

//To use this engine you need an rf_score executable implementing the
//random-forest rescoring function of Ballester and Mitchell.

package score

import (
	"context"
	"os"
	"regexp"
	"strconv"

	"godock/grid"
)

//RFScore is an optional random-forest rescorer. Its output format
//varies between builds, so the first number it prints is taken as the
//prediction.
type RFScore struct {
	command string
}

func NewRFScore() *RFScore {
	O := new(RFScore)
	O.SetDefaults()
	return O
}

func (O *RFScore) SetDefaults() { O.command = os.ExpandEnv("rf_score") }

func (O *RFScore) Name() string { return "rf_score" }

func (O *RFScore) Command() string { return O.command }

func (O *RFScore) SetCommand(name string) { O.command = name }

func (O *RFScore) Available() bool { return probe(O.command, "--help") }

var rfScoreRE = regexp.MustCompile(`([-+]?\d+\.\d+)`)

func (O *RFScore) Score(ctx context.Context, receptor, ligand string, _ grid.Box) Result {
	out, err := run(ctx, O.command, []string{receptor, ligand})
	if err != nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: err.Error()}
	}
	m := rfScoreRE.FindStringSubmatch(out)
	if m == nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: ErrNoParse + " (rf_score)"}
	}
	aff, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: err.Error()}
	}
	return Result{Engine: O.Name(), Affinity: aff, Succeeded: true}
}
