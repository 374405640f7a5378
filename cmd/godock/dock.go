/*
 * dock.go, part of godock.
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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"godock/dock"
	"godock/grid"
	"godock/mutate"
	"godock/prep"
	"godock/relax"
	"godock/report"
	"godock/score"
)

type dockFlags struct {
	receptor   string
	ligand     string
	ligandCode string
	mutation   string

	pocket  string
	pockets string
	center  []float64
	buffer  float64

	relaxOn   bool
	stiffness float64
	maxIter   int

	consensus bool
	method    string

	flex           string
	ph             float64
	cpu            int
	numModes       int
	exhaustiveness int

	out     string
	archive string
	plot    string
	outDir  string
}

func newDockCmd() *cobra.Command {
	var f dockFlags
	cmd := &cobra.Command{
		Use:   "dock",
		Short: "run one docking call",
		Long: `Dock a ligand against a receptor and write the result record as JSON.
An optional point mutation is applied and verified first, an optional
energy relaxation resolves local clashes around the mutation site, and
the pose can be rescored by every installed scoring engine into a
consensus affinity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDock(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.receptor, "receptor", "r", "", "receptor PDB file (required)")
	fl.StringVarP(&f.ligand, "ligand", "l", "", "ligand PDB or PDBQT file (required)")
	fl.StringVar(&f.ligandCode, "ligand-code", "", "extract this hetero residue from the ligand file")
	fl.StringVarP(&f.mutation, "mutation", "m", "", "point mutation, e.g. A:87:D:G")
	fl.StringVar(&f.pocket, "pocket", "", "named binding pocket from the pockets file")
	fl.StringVar(&f.pockets, "pockets", "pockets.yaml", "binding pockets file")
	fl.Float64SliceVar(&f.center, "center", nil, "grid box center x,y,z in Angstrom")
	fl.Float64Var(&f.buffer, "buffer", 0, "grid buffer around the ligand extent, Angstrom")
	fl.BoolVar(&f.relaxOn, "relax", false, "energy-minimize the receptor before docking")
	fl.Float64Var(&f.stiffness, "stiffness", 0, "backbone restraint stiffness, kJ/mol/nm^2")
	fl.IntVar(&f.maxIter, "max-iter", 1000, "maximum minimization iterations")
	fl.BoolVar(&f.consensus, "consensus", false, "rescore with every installed engine")
	fl.StringVar(&f.method, "consensus-method", "mean", "consensus method: mean, median or weighted")
	fl.StringVar(&f.flex, "flex", "", "flexible receptor side chains, PDBQT")
	fl.Float64Var(&f.ph, "ph", 7.4, "protonation pH for preparation")
	fl.IntVar(&f.cpu, "cpu", 4, "CPUs for the docking engine")
	fl.IntVar(&f.numModes, "num-modes", 9, "binding modes to generate")
	fl.IntVar(&f.exhaustiveness, "exhaustiveness", 8, "docking search exhaustiveness")
	fl.StringVarP(&f.out, "out", "o", "", "result record path (default: stdout)")
	fl.StringVar(&f.archive, "archive", "", "also write the record gzipped to this path")
	fl.StringVar(&f.plot, "plot", "", "write a per-engine affinity chart to this PNG")
	fl.StringVar(&f.outDir, "work-dir", "", "directory for intermediate files (default: receptor's)")
	cmd.MarkFlagRequired("receptor")
	cmd.MarkFlagRequired("ligand")
	return cmd
}

func runDock(cmd *cobra.Command, f dockFlags) error {
	job, err := buildJob(f)
	if err != nil {
		return err
	}
	vina := score.NewVina()
	vina.SetCPU(f.cpu)
	vina.SetNumModes(f.numModes)
	vina.SetExhaustiveness(f.exhaustiveness)
	if f.flex != "" {
		vina.SetFlex(f.flex)
	}

	var registry *score.Registry
	if f.consensus {
		registry, err = score.Detect(logger, vina, score.NewGnina(), score.NewRFScore())
		if err != nil {
			return err
		}
	} else if !vina.Available() {
		return fmt.Errorf("%s: %s", score.ErrPrimaryMissing, vina.Name())
	}

	converter := prep.NewObabel()
	if !converter.Available() {
		return fmt.Errorf("%s: obabel not installed", prep.ErrConversion)
	}

	opts := dock.DefaultOptions()
	opts.EngineTimeout = viper.GetDuration("engine.timeout")
	opts.PlausibleBound = viper.GetFloat64("score.plausible_bound")
	opts.GridParams.MinSize = viper.GetFloat64("grid.min_size")
	opts.GridParams.MaxSize = viper.GetFloat64("grid.max_size")
	opts.GridParams.DefaultSize = viper.GetFloat64("grid.default_size")
	opts.GridParams.Buffer = viper.GetFloat64("grid.buffer")
	opts.Prep.PH = f.ph

	pipeline := dock.NewPipeline(vina, registry, relax.NewDriver(), converter, logger, opts)
	if job.Pocket != "" {
		pockets, err := grid.LoadPockets(f.pockets)
		if err != nil {
			return usageError{err}
		}
		pipeline.SetPockets(pockets)
	}

	rec, err := pipeline.Run(cmd.Context(), *job)
	if err != nil {
		return err
	}
	return writeOutputs(rec, f)
}

func buildJob(f dockFlags) (*dock.Job, error) {
	job := &dock.Job{
		Receptor:      f.receptor,
		Ligand:        f.ligand,
		LigandCode:    f.ligandCode,
		Relax:         f.relaxOn,
		Stiffness:     f.stiffness,
		MaxIterations: f.maxIter,
		Pocket:        f.pocket,
		Buffer:        f.buffer,
		Consensus:     f.consensus,
		OutDir:        f.outDir,
	}
	if f.mutation != "" {
		sp, err := mutate.ParseSpec(f.mutation)
		if err != nil {
			return nil, usageError{err}
		}
		job.Mutation = &sp
	}
	if len(f.center) > 0 {
		if len(f.center) != 3 {
			return nil, usagef("--center wants exactly three values, got %d", len(f.center))
		}
		copy(job.Center[:], f.center)
	}
	if f.pocket == "" && len(f.center) == 0 {
		return nil, usagef("either --pocket or --center is required")
	}
	method, err := score.ParseMethod(f.method)
	if err != nil {
		return nil, usageError{err}
	}
	job.Method = method
	if f.stiffness < 0 {
		return nil, usagef("--stiffness must be >= 0, got %g", f.stiffness)
	}
	return job, nil
}

func writeOutputs(rec *dock.Record, f dockFlags) error {
	if f.out == "" {
		b, err := rec.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(b))
	} else if err := rec.Write(f.out); err != nil {
		return err
	}
	if f.archive != "" {
		if err := rec.WriteArchive(f.archive); err != nil {
			return err
		}
	}
	if f.plot != "" {
		if err := report.Plot(rec, f.plot); err != nil {
			logger.Warn("affinity plot not written", zap.Error(err))
		}
	}
	return nil
}
