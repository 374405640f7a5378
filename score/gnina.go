/*
 * gnina.go, part of godock.
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

//To use this engine you need the gnina program, available from
//github.com/gnina/gnina. Please cite the gnina references if you used
//it.

package score

import (
	"context"
	"os"
	"regexp"
	"strconv"

	"godock/grid"
)

//Gnina is an optional scorer using gnina's convolutional scoring
//function. It rescores the pose; the grid box is not needed.
type Gnina struct {
	command string
}

func NewGnina() *Gnina {
	O := new(Gnina)
	O.SetDefaults()
	return O
}

func (O *Gnina) SetDefaults() { O.command = os.ExpandEnv("gnina") }

func (O *Gnina) Name() string { return "gnina" }

func (O *Gnina) Command() string { return O.command }

func (O *Gnina) SetCommand(name string) { O.command = name }

func (O *Gnina) Available() bool { return probe(O.command, "--help") }

var gninaAffinityRE = regexp.MustCompile(`CNNaffinity\s*:?\s*([-+]?\d*\.?\d+)`)

func (O *Gnina) Score(ctx context.Context, receptor, ligand string, _ grid.Box) Result {
	args := []string{"-r", receptor, "-l", ligand, "--score_only"}
	out, err := run(ctx, O.command, args)
	if err != nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: err.Error()}
	}
	m := gninaAffinityRE.FindStringSubmatch(out)
	if m == nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: ErrNoParse + " (gnina)"}
	}
	aff, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: err.Error()}
	}
	return Result{Engine: O.Name(), Affinity: aff, Succeeded: true}
}
