/*
 * dock_test.go, part of godock.
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

package dock

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"godock/chem"
	"godock/grid"
	"godock/mutate"
	"godock/prep"
	"godock/relax"
	"godock/score"
)

const receptorPDB = `ATOM      1  N   ASP A  87      11.104  13.207   9.002  1.00 20.00           N
ATOM      2  CA  ASP A  87      12.560  13.329   9.000  1.00 20.00           C
ATOM      3  C   ASP A  87      13.059  14.512   9.822  1.00 20.00           C
ATOM      4  O   ASP A  87      12.313  15.441  10.131  1.00 20.00           O
ATOM      5  CB  ASP A  87      13.104  12.041   9.617  1.00 20.00           C
ATOM      6  CG  ASP A  87      14.599  11.878   9.410  1.00 20.00           C
END
`

const ligandPDB = `HETATM    1  C1  LIG A 201       1.000   2.000   3.000  1.00  0.00           C
HETATM    2  C2  LIG A 201       3.000   2.000   3.000  1.00  0.00           C
END
`

const minimalPDBQT = "ATOM      1  C   LIG A   1       0.000   0.000   0.000  1.00  0.00     0.123 C\n"

type fakeDocker struct {
	affinity float64
	fail     bool
}

func (f fakeDocker) Name() string { return "vina" }

func (f fakeDocker) Dock(_ context.Context, _, _ string, _ grid.Box, out string) (float64, string, error) {
	if f.fail {
		return 0, "", Error{"vina exploded", nil, true}
	}
	if err := os.WriteFile(out, []byte(minimalPDBQT), 0o644); err != nil {
		return 0, "", err
	}
	return f.affinity, out, nil
}

type fakeConverter struct{}

func (fakeConverter) Name() string { return "fake" }

func (fakeConverter) Available() bool { return true }

func (fakeConverter) Convert(_ context.Context, _, out string, _ prep.Options) error {
	return os.WriteFile(out, []byte(minimalPDBQT), 0o644)
}

type fakeMinimizer struct{ unavailable bool }

func (f fakeMinimizer) Available() bool { return !f.unavailable }

func (f fakeMinimizer) Minimize(_ context.Context, s *chem.Structure, _ relax.RestraintSpec, _ int, _ float64) (*chem.Structure, error) {
	return s.Copy(), nil
}

type fakeScorer struct {
	name     string
	affinity float64
	fail     bool
}

func (f fakeScorer) Name() string { return f.name }

func (f fakeScorer) Available() bool { return true }

func (f fakeScorer) Score(_ context.Context, _, _ string, _ grid.Box) score.Result {
	if f.fail {
		return score.Result{Engine: f.name, Succeeded: false, Detail: "crashed"}
	}
	return score.Result{Engine: f.name, Affinity: f.affinity, Succeeded: true}
}

func writeInputs(Te *testing.T) (receptor, ligand string) {
	dir := Te.TempDir()
	receptor = filepath.Join(dir, "receptor.pdb")
	ligand = filepath.Join(dir, "ligand.pdb")
	require.NoError(Te, os.WriteFile(receptor, []byte(receptorPDB), 0o644))
	require.NoError(Te, os.WriteFile(ligand, []byte(ligandPDB), 0o644))
	return receptor, ligand
}

func testPipeline(Te *testing.T, registry *score.Registry) *Pipeline {
	return NewPipeline(fakeDocker{affinity: -7.43}, registry, fakeMinimizer{}, fakeConverter{}, zap.NewNop(), DefaultOptions())
}

func TestRunBasic(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	p := testPipeline(Te, nil)
	rec, err := p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand, Center: [3]float64{2, 2, 3}})
	require.NoError(Te, err)
	assert.NotEmpty(Te, rec.RunID)
	assert.Equal(Te, -7.43, rec.PrimaryAffinity)
	assert.FileExists(Te, rec.PosePath)
	assert.Nil(Te, rec.Mutation)
	assert.Nil(Te, rec.Relaxed)
	assert.Nil(Te, rec.ConsensusAffinity)
}

func TestRunMutationAndRelax(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	p := testPipeline(Te, nil)
	sp := mutate.Spec{Chain: "A", ResID: 87, WantOld: 'D', New: 'G'}
	rec, err := p.Run(context.Background(), Job{
		Receptor:  receptor,
		Ligand:    ligand,
		Mutation:  &sp,
		Relax:     true,
		Stiffness: 500,
		Center:    [3]float64{2, 2, 3},
	})
	require.NoError(Te, err)
	require.NotNil(Te, rec.Mutation)
	assert.Equal(Te, "A:87:D:G", *rec.Mutation)
	require.NotNil(Te, rec.Relaxed)
	assert.True(Te, *rec.Relaxed)
	require.NotNil(Te, rec.Stiffness)
	assert.Equal(Te, 500.0, *rec.Stiffness)

	//the mutated receptor was written next to the original
	mutant := filepath.Join(filepath.Dir(receptor), "receptor_mutant.pdb")
	require.FileExists(Te, mutant)
	mol, err := chem.PDBFileRead(mutant)
	require.NoError(Te, err)
	assert.Equal(Te, "GLY", mol.Atom(0).MolName)
}

func TestRunMutationMismatchIsFatal(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	p := testPipeline(Te, nil)
	sp := mutate.Spec{Chain: "A", ResID: 87, WantOld: 'K', New: 'G'}
	_, err := p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand, Mutation: &sp})
	require.Error(Te, err)
	assert.True(Te, mutate.IsMismatch(err))
}

func TestRunRelaxSkippedKeepsGoing(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	p := NewPipeline(fakeDocker{affinity: -6.1}, nil, fakeMinimizer{unavailable: true}, fakeConverter{}, zap.NewNop(), DefaultOptions())
	rec, err := p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand, Relax: true})
	require.NoError(Te, err)
	require.NotNil(Te, rec.Relaxed)
	assert.False(Te, *rec.Relaxed)
	assert.Equal(Te, -6.1, rec.PrimaryAffinity)
}

func TestRunConsensus(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	registry, err := score.Detect(zap.NewNop(),
		fakeScorer{name: "vina", affinity: -7.43},
		fakeScorer{name: "gnina", affinity: -5.98},
		fakeScorer{name: "rf_score", affinity: -5.90},
	)
	require.NoError(Te, err)
	p := testPipeline(Te, registry)
	rec, err := p.Run(context.Background(), Job{
		Receptor:  receptor,
		Ligand:    ligand,
		Consensus: true,
		Method:    score.Mean,
	})
	require.NoError(Te, err)
	require.NotNil(Te, rec.ConsensusAffinity)
	assert.InDelta(Te, -6.437, *rec.ConsensusAffinity, 0.005)
	require.NotNil(Te, rec.Uncertainty)
	assert.InDelta(Te, 0.7031, *rec.Uncertainty, 0.001)
	//primary affinity is kept verbatim next to the consensus
	assert.Equal(Te, -7.43, rec.PrimaryAffinity)
	//breakdown follows the registry's declaration order
	require.Len(Te, rec.PerEngine, 3)
	assert.Equal(Te, "vina", rec.PerEngine[0].Engine)
	assert.Equal(Te, "gnina", rec.PerEngine[1].Engine)
	assert.Equal(Te, "rf_score", rec.PerEngine[2].Engine)
}

func TestRunConsensusTotalFailureKeepsPrimary(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	registry, err := score.Detect(zap.NewNop(),
		fakeScorer{name: "vina", fail: true},
		fakeScorer{name: "gnina", fail: true},
	)
	require.NoError(Te, err)
	p := testPipeline(Te, registry)
	rec, err := p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand, Consensus: true})
	require.NoError(Te, err)
	assert.Nil(Te, rec.ConsensusAffinity)
	assert.Equal(Te, -7.43, rec.PrimaryAffinity)
	require.Len(Te, rec.PerEngine, 2)
	assert.False(Te, rec.PerEngine[0].Succeeded)
}

func TestRunCancelled(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	p := testPipeline(Te, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, Job{Receptor: receptor, Ligand: ligand})
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrCancelled)
}

func TestRunBadJob(Te *testing.T) {
	p := testPipeline(Te, nil)
	_, err := p.Run(context.Background(), Job{})
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrBadJob)
}

func TestRunDockFailureIsFatal(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	p := NewPipeline(fakeDocker{fail: true}, nil, nil, fakeConverter{}, zap.NewNop(), DefaultOptions())
	_, err := p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand})
	require.Error(Te, err)
}

func TestRunPocketPlacement(Te *testing.T) {
	receptor, ligand := writeInputs(Te)
	dir := Te.TempDir()
	pocketsPath := filepath.Join(dir, "pockets.yaml")
	require.NoError(Te, os.WriteFile(pocketsPath, []byte("pockets:\n  qrdr:\n    center_x: 1.0\n    center_y: 2.0\n    center_z: 3.0\n    size_x: 24.0\n    size_y: 24.0\n    size_z: 24.0\n"), 0o644))
	ps, err := grid.LoadPockets(pocketsPath)
	require.NoError(Te, err)

	p := testPipeline(Te, nil)
	p.SetPockets(ps)
	rec, err := p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand, Pocket: "qrdr"})
	require.NoError(Te, err)
	assert.NotNil(Te, rec)

	_, err = p.Run(context.Background(), Job{Receptor: receptor, Ligand: ligand, Pocket: "nope"})
	require.Error(Te, err)
}
