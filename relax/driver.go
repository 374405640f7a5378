/*
 * driver.go, part of godock.
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

package relax

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"godock/chem"
)

//Driver runs an external minimizer executable. The executable is
//expected to take a PDB, a force-field spec, a restraint file and an
//iteration cap, and to write the minimized coordinates as a PDB with
//the same atom order.
type Driver struct {
	command    string
	forcefield string
}

//NewDriver returns a Driver with the default command and force field.
func NewDriver() *Driver {
	d := new(Driver)
	d.SetDefaults()
	return d
}

func (D *Driver) SetDefaults() {
	D.command = os.ExpandEnv("openmm-minimize")
	D.forcefield = "amber14-all.xml"
}

func (D *Driver) Command() string { return D.command }

func (D *Driver) SetCommand(name string) { D.command = name }

//SetForceField selects the force-field spec passed to the minimizer.
func (D *Driver) SetForceField(ff string) { D.forcefield = ff }

//Available reports whether the minimizer executable can be found.
func (D *Driver) Available() bool {
	_, err := exec.LookPath(D.command)
	return err == nil
}

//Minimize writes the structure and restraint file to a temporary
//directory, runs the minimizer and reads the result back. The
//temporary directory is removed on every exit path.
func (D *Driver) Minimize(ctx context.Context, s *chem.Structure, r RestraintSpec, maxIter int, tol float64) (*chem.Structure, error) {
	dir, err := os.MkdirTemp("", "godock-relax")
	if err != nil {
		return nil, Error{ErrMinimizeFailed + ": " + err.Error(), []string{"Minimize"}, true}
	}
	defer os.RemoveAll(dir)
	in := filepath.Join(dir, "input.pdb")
	out := filepath.Join(dir, "minimized.pdb")
	if err := chem.PDBFileWrite(in, s); err != nil {
		return nil, errDecorate(err, "Minimize")
	}
	args := []string{
		"--pdb", in,
		"--out", out,
		"--forcefield", D.forcefield,
		"--max-iterations", strconv.Itoa(maxIter),
	}
	if tol > 0 {
		args = append(args, "--tolerance", strconv.FormatFloat(tol, 'f', -1, 64))
	}
	if r.Stiffness > 0 {
		rfile := filepath.Join(dir, "restraints.txt")
		if err := writeRestraints(rfile, s, r); err != nil {
			return nil, errDecorate(err, "Minimize")
		}
		args = append(args, "--restraints", rfile)
	}
	cmd := exec.CommandContext(ctx, D.command, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, Error{fmt.Sprintf("%s: %s: %s", ErrMinimizeFailed, err.Error(), strings.TrimSpace(string(output))), []string{"Minimize"}, true}
	}
	relaxed, err := chem.PDBFileRead(out)
	if err != nil {
		return nil, Error{ErrBadOutput + ": " + err.Error(), []string{"Minimize"}, true}
	}
	if relaxed.Len() != s.Len() {
		return nil, Error{fmt.Sprintf("%s: got %d atoms, want %d", ErrBadOutput, relaxed.Len(), s.Len()), []string{"Minimize"}, true}
	}
	return relaxed, nil
}

//writeRestraints emits the harmonic restraint file read by the
//minimizer: the spring constant, then one line per anchored atom with
//its index and reference position.
func writeRestraints(path string, s *chem.Structure, r RestraintSpec) error {
	anchors := r.AnchorNames
	if len(anchors) == 0 {
		anchors = DefaultAnchors()
	}
	isAnchor := make(map[string]bool, len(anchors))
	for _, n := range anchors {
		isAnchor[n] = true
	}
	ref := r.Reference
	if ref == nil {
		ref = s.Coords
	}
	f, err := os.Create(path)
	if err != nil {
		return Error{ErrMinimizeFailed + ": " + err.Error(), []string{"writeRestraints"}, true}
	}
	defer f.Close()
	fmt.Fprintf(f, "k %.4f\n", r.Stiffness)
	for i := 0; i < s.Len(); i++ {
		at := s.Atom(i)
		if at.Het || !isAnchor[at.Name] {
			continue
		}
		v := ref.Vec(i)
		fmt.Fprintf(f, "atom %d %.3f %.3f %.3f\n", i, v[0], v[1], v[2])
	}
	return nil
}
