/*
 * vina.go, part of godock.
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

//To use this engine you need the AutoDock Vina program, available from
//the Forli lab at Scripps Research. Please cite the Vina references if
//you used it.

package score

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"godock/grid"
)

//probe checks that an executable runs at all, with a short deadline so
//a hung binary does not stall startup detection.
func probe(command string, args ...string) bool {
	if _, err := exec.LookPath(command); err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := exec.CommandContext(ctx, command, args...).Run()
	if ctx.Err() != nil {
		return false
	}
	//a nonzero exit is fine, the binary exists and answered
	_, runerr := err.(*exec.ExitError)
	return err == nil || runerr
}

//run executes an engine and returns its combined output. Vina and its
//relatives write part of their report to stderr, so both streams are
//parsed together.
func run(ctx context.Context, command string, args []string) (string, error) {
	out, err := exec.CommandContext(ctx, command, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", Error{command + " timed out", command, []string{"run"}, false}
	}
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if len(detail) > 300 {
			detail = detail[len(detail)-300:]
		}
		return "", Error{command + " failed: " + err.Error() + ": " + detail, command, []string{"run"}, false}
	}
	return string(out), nil
}

//Vina is the mandatory docking and scoring engine.
type Vina struct {
	command        string
	cpu            int
	numModes       int
	exhaustiveness int
	flex           string
}

func NewVina() *Vina {
	O := new(Vina)
	O.SetDefaults()
	return O
}

func (O *Vina) SetDefaults() {
	O.command = os.ExpandEnv("vina")
	O.cpu = 4
	O.numModes = 9
	O.exhaustiveness = 8
}

func (O *Vina) Name() string { return "vina" }

func (O *Vina) Command() string { return O.command }

func (O *Vina) SetCommand(name string) { O.command = name }

func (O *Vina) SetCPU(cpu int) { O.cpu = cpu }

func (O *Vina) SetNumModes(n int) { O.numModes = n }

func (O *Vina) SetExhaustiveness(e int) { O.exhaustiveness = e }

//SetFlex sets a PDBQT file with flexible receptor side chains, passed
//to the engine on full docking runs.
func (O *Vina) SetFlex(path string) { O.flex = path }

func (O *Vina) Available() bool { return probe(O.command, "--help") }

//Score runs a rigid rescore of the ligand pose against the receptor.
func (O *Vina) Score(ctx context.Context, receptor, ligand string, box grid.Box) Result {
	args := []string{"--receptor", receptor, "--ligand", ligand}
	args = append(args, box.VinaArgs()...)
	args = append(args, "--score_only")
	out, err := run(ctx, O.command, args)
	if err != nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: err.Error()}
	}
	aff, err := parseVinaAffinity(out)
	if err != nil {
		return Result{Engine: O.Name(), Succeeded: false, Detail: err.Error()}
	}
	return Result{Engine: O.Name(), Affinity: aff, Succeeded: true}
}

//Dock runs a full docking search and returns the best-mode affinity
//plus the path of the written pose file.
func (O *Vina) Dock(ctx context.Context, receptor, ligand string, box grid.Box, out string) (float64, string, error) {
	if out == "" {
		out = strings.TrimSuffix(ligand, ".pdbqt") + "_docked.pdbqt"
	}
	args := []string{
		"--receptor", receptor,
		"--ligand", ligand,
		"--out", out,
		"--cpu", strconv.Itoa(O.cpu),
		"--num_modes", strconv.Itoa(O.numModes),
		"--exhaustiveness", strconv.Itoa(O.exhaustiveness),
	}
	if O.flex != "" {
		args = append(args, "--flex", O.flex)
	}
	args = append(args, box.VinaArgs()...)
	output, err := run(ctx, O.command, args)
	if err != nil {
		return 0, "", errDecorate(err, "Dock")
	}
	aff, err := parseVinaAffinity(output)
	if err != nil {
		return 0, "", errDecorate(err, "Dock")
	}
	return aff, out, nil
}

var (
	//the mode-1 row of the results table printed by Vina 1.2.x
	vinaTableRE = regexp.MustCompile(`(?mi)^\s*1\s+([-+]?\d*\.?\d+(?:e[-+]?\d+)?)\s+`)
	//older releases print the value followed by its unit
	vinaKcalRE = regexp.MustCompile(`([-+]?\d*\.?\d+(?:e[-+]?\d+)?)\s+kcal/mol`)
)

func parseVinaAffinity(output string) (float64, error) {
	var raw string
	if m := vinaTableRE.FindStringSubmatch(output); m != nil {
		raw = m[1]
	} else if m := vinaKcalRE.FindStringSubmatch(output); m != nil {
		raw = m[1]
	} else {
		return 0, Error{fmt.Sprintf("%s (vina)", ErrNoParse), "vina", []string{"parseVinaAffinity"}, false}
	}
	return strconv.ParseFloat(raw, 64)
}
