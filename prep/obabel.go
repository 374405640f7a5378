/*
 * obabel.go, part of godock.
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

//To use this converter you need the Open Babel program, available from
//openbabel.org. Please cite the Open Babel reference if you used it.

package prep

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

//Obabel converts with the Open Babel command-line tool.
type Obabel struct {
	command string
}

func NewObabel() *Obabel {
	O := new(Obabel)
	O.SetDefaults()
	return O
}

func (O *Obabel) SetDefaults() { O.command = os.ExpandEnv("obabel") }

func (O *Obabel) Name() string { return "obabel" }

func (O *Obabel) Command() string { return O.command }

func (O *Obabel) SetCommand(name string) { O.command = name }

func (O *Obabel) Available() bool {
	_, err := exec.LookPath(O.command)
	return err == nil
}

func (O *Obabel) Convert(ctx context.Context, in, out string, o Options) error {
	args := []string{in, "-O", out}
	if o.Rigid {
		args = append(args, "-xr")
	}
	if o.AddHydrogens {
		args = append(args, "-h")
	}
	args = append(args, fmt.Sprintf("-p%.1f", o.PH))
	if o.ChargeModel != "" && o.ChargeModel != NoCharges {
		args = append(args, "--partialcharge", string(o.ChargeModel))
	}
	output, err := exec.CommandContext(ctx, O.command, args...).CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		return Error{fmt.Sprintf("%s: %s: %s", ErrConversion, err.Error(), detail), []string{"Convert"}, true}
	}
	return nil
}
