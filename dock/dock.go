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

//Package dock orchestrates one docking call: optional mutation,
//optional relaxation, preparation, grid placement, the primary docking
//run and the consensus rescore. Every collaborator is injected, so the
//pipeline itself holds no ambient state. Cancellation is honored
//between stages only; an external engine is never interrupted in a way
//that leaks its temporary files.
package dock

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"godock/chem"
	"godock/grid"
	"godock/mutate"
	"godock/prep"
	"godock/relax"
	"godock/score"
	"godock/v3"
)

//Docker runs the primary docking search. *score.Vina satisfies it.
type Docker interface {
	Name() string
	Dock(ctx context.Context, receptor, ligand string, box grid.Box, out string) (float64, string, error)
}

//Options are the per-process settings of a pipeline, as opposed to the
//per-call settings in a Job.
type Options struct {
	GridParams     grid.Params
	EngineTimeout  time.Duration
	PlausibleBound float64
	Prep           prep.Options
}

//DefaultOptions returns the pipeline defaults: the standard grid
//parameters, a five minute per-engine deadline and physiological-pH
//preparation.
func DefaultOptions() Options {
	return Options{
		GridParams:    grid.DefaultParams(),
		EngineTimeout: 5 * time.Minute,
		Prep:          prep.DefaultOptions(),
	}
}

//Job describes one docking call.
type Job struct {
	Receptor string //PDB
	Ligand   string //PDB, or PDBQT to skip preparation
	//LigandCode extracts the first copy of a hetero residue from the
	//ligand PDB before preparation.
	LigandCode string
	Mutation   *mutate.Spec

	Relax         bool
	Stiffness     float64
	MaxIterations int

	//Pocket names a configured binding pocket; when empty, Center is
	//used directly.
	Pocket string
	Center [3]float64
	//Buffer overrides the configured grid buffer when positive.
	Buffer float64

	Consensus bool
	Method    score.Method

	//OutDir receives the intermediate and pose files; defaults to the
	//receptor's directory.
	OutDir string
}

//Pipeline wires the stages of a docking call together.
type Pipeline struct {
	docker    Docker
	registry  *score.Registry
	minimizer relax.Minimizer
	converter prep.Converter
	builder   mutate.SideChainBuilder
	pockets   grid.Pockets
	log       *zap.Logger
	opts      Options
}

//NewPipeline builds a pipeline from its collaborators. registry,
//minimizer and pockets may be nil when the corresponding stages are
//never requested.
func NewPipeline(docker Docker, registry *score.Registry, minimizer relax.Minimizer, converter prep.Converter, log *zap.Logger, opts Options) *Pipeline {
	return &Pipeline{
		docker:    docker,
		registry:  registry,
		minimizer: minimizer,
		converter: converter,
		builder:   mutate.Truncate{},
		log:       log,
		opts:      opts,
	}
}

//SetPockets installs the named binding pockets available to jobs.
func (P *Pipeline) SetPockets(ps grid.Pockets) { P.pockets = ps }

//SetSideChainBuilder replaces the default truncating side-chain
//builder.
func (P *Pipeline) SetSideChainBuilder(b mutate.SideChainBuilder) { P.builder = b }

func stageCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return Error{ErrCancelled + ": " + err.Error(), []string{"Run"}, true}
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

//Run executes the docking call described by j and returns its result
//record. Optional stages degrade gracefully; the error return is
//reserved for invalid input, a failed primary docking run, total
//scoring failure and cancellation.
func (P *Pipeline) Run(ctx context.Context, j Job) (*Record, error) {
	if j.Receptor == "" || j.Ligand == "" {
		return nil, Error{ErrBadJob + ": receptor and ligand paths are required", []string{"Run"}, true}
	}
	rec := &Record{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Receptor:  j.Receptor,
		Ligand:    j.Ligand,
	}
	outdir := j.OutDir
	if outdir == "" {
		outdir = filepath.Dir(j.Receptor)
	}
	log := P.log.With(zap.String("run_id", rec.RunID))

	mol, err := chem.PDBFileRead(j.Receptor)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	receptorPDB := j.Receptor

	//mutation
	if j.Mutation != nil {
		mol, err = mutate.Apply(ctx, mol, *j.Mutation, P.builder, log)
		if err != nil {
			return nil, errDecorate(err, "Run")
		}
		m := j.Mutation.String()
		rec.Mutation = &m
		receptorPDB = filepath.Join(outdir, stem(j.Receptor)+"_mutant.pdb")
		if err := chem.PDBFileWrite(receptorPDB, mol); err != nil {
			return nil, errDecorate(err, "Run")
		}
	}
	if err := stageCheck(ctx); err != nil {
		return nil, err
	}

	//relaxation; never fatal
	if j.Relax {
		res := relax.Run(ctx, P.minimizer, relax.Request{
			Structure:     mol,
			Stiffness:     j.Stiffness,
			MaxIterations: j.MaxIterations,
		}, log)
		relaxed := res.Relaxed
		st := j.Stiffness
		rec.Relaxed = &relaxed
		rec.Stiffness = &st
		if res.Relaxed {
			mol = res.Structure
			receptorPDB = filepath.Join(outdir, stem(j.Receptor)+"_minimized.pdb")
			if err := chem.PDBFileWrite(receptorPDB, mol); err != nil {
				return nil, errDecorate(err, "Run")
			}
		}
	}
	if err := stageCheck(ctx); err != nil {
		return nil, err
	}

	//preparation
	receptorPDBQT, err := prep.Receptor(ctx, P.converter, receptorPDB, P.opts.Prep)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	ligandPDBQT, ligCoords, err := P.prepareLigand(ctx, j, outdir)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	if err := stageCheck(ctx); err != nil {
		return nil, err
	}

	//grid placement
	box, err := P.placeBox(j, ligCoords)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	log.Info("grid box placed", zap.String("box", box.String()))

	//primary docking
	posePath := filepath.Join(outdir, stem(j.Ligand)+"_docked.pdbqt")
	affinity, pose, err := P.docker.Dock(ctx, receptorPDBQT, ligandPDBQT, box, posePath)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	rec.PrimaryAffinity = affinity
	rec.PosePath = pose
	log.Info("primary docking complete",
		zap.String("engine", P.docker.Name()),
		zap.Float64("affinity", affinity),
	)
	if err := stageCheck(ctx); err != nil {
		return nil, err
	}

	//consensus rescore
	if j.Consensus && P.registry != nil {
		P.applyConsensus(ctx, j, rec, receptorPDBQT, ligandPDBQT, box, log)
	}
	return rec, nil
}

//prepareLigand converts the ligand to PDBQT, extracting a single
//hetero-residue copy first when requested. A ligand already in PDBQT
//format is used as is; its coordinates are then unknown to the grid
//stage, which falls back to the default box size.
func (P *Pipeline) prepareLigand(ctx context.Context, j Job, outdir string) (string, *v3.Matrix, error) {
	if strings.HasSuffix(strings.ToLower(j.Ligand), ".pdbqt") {
		return j.Ligand, nil, nil
	}
	ligandPDB := j.Ligand
	lig, err := chem.PDBFileRead(ligandPDB)
	if err != nil {
		return "", nil, err
	}
	if j.LigandCode != "" {
		lig, err = prep.ExtractLigand(lig, j.LigandCode)
		if err != nil {
			return "", nil, err
		}
		ligandPDB = filepath.Join(outdir, stem(j.Ligand)+"_extracted.pdb")
		if err := chem.PDBFileWrite(ligandPDB, lig); err != nil {
			return "", nil, err
		}
	}
	out, err := prep.Ligand(ctx, P.converter, ligandPDB, P.opts.Prep)
	if err != nil {
		return "", nil, err
	}
	return out, lig.Coords, nil
}

//placeBox resolves the search volume: a configured pocket when named,
//the job's explicit center otherwise.
func (P *Pipeline) placeBox(j Job, ligCoords *v3.Matrix) (grid.Box, error) {
	params := P.opts.GridParams
	if j.Buffer > 0 {
		if j.Buffer < grid.DefaultBuffer {
			P.log.Warn("grid buffer below the clash-safe minimum",
				zap.Float64("buffer", j.Buffer),
				zap.Float64("minimum", grid.DefaultBuffer))
		}
		params.Buffer = j.Buffer
	}
	center := j.Center
	if j.Pocket != "" {
		if P.pockets == nil {
			return grid.Box{}, Error{fmt.Sprintf("%s: pocket %q requested but no pockets configured", ErrBadJob, j.Pocket), []string{"placeBox"}, true}
		}
		p, err := P.pockets.Get(j.Pocket)
		if err != nil {
			return grid.Box{}, err
		}
		if p.Fixed() {
			return p.Box(params), nil
		}
		center = p.Center
	}
	return grid.Compute(center, ligCoords, params)
}

//applyConsensus runs the ensemble rescore and folds the aggregate into
//the record. A total scoring failure here is absorbed with a warning:
//the primary docking run already produced an affinity, so the record
//is still reportable, just without a consensus.
func (P *Pipeline) applyConsensus(ctx context.Context, j Job, rec *Record, receptor, ligand string, box grid.Box, log *zap.Logger) {
	method := j.Method
	if method == "" {
		method = score.Mean
	}
	results := P.registry.ScoreAll(ctx, receptor, ligand, box, score.Options{
		Timeout:        P.opts.EngineTimeout,
		PlausibleBound: P.opts.PlausibleBound,
	})
	//per-engine breakdown in the registry's declaration order
	for _, name := range P.registry.Names() {
		rec.PerEngine = append(rec.PerEngine, results[name])
	}
	cons, err := score.Aggregate(rec.PerEngine, method, P.registry.Primary())
	if err != nil {
		log.Warn("consensus rescore produced no result, keeping primary affinity only",
			zap.Error(err))
		return
	}
	rec.ConsensusAffinity = &cons.Affinity
	rec.Uncertainty = &cons.Uncertainty
	rec.ConsensusMethod = string(cons.Method)
	log.Info("consensus complete",
		zap.Float64("consensus_affinity", cons.Affinity),
		zap.Float64("uncertainty", cons.Uncertainty),
		zap.Strings("engines", cons.Engines),
	)
}
