/*
 * relax_test.go, part of godock.
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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"godock/chem"
)

const testPDB = `ATOM      1  N   GLY A   1       0.000   0.000   0.000  1.00  0.00           N
ATOM      2  CA  GLY A   1       1.450   0.000   0.000  1.00  0.00           C
ATOM      3  C   GLY A   1       2.000   1.400   0.000  1.00  0.00           C
ATOM      4  O   GLY A   1       1.300   2.400   0.000  1.00  0.00           O
END
`

func testStructure(Te *testing.T) *chem.Structure {
	mol, err := chem.PDBRead(strings.NewReader(testPDB))
	require.NoError(Te, err)
	return mol
}

//fakeMinimizer pulls every coordinate a fixed fraction of the way
//toward the origin; the fraction shrinks with restraint stiffness, so
//repeated application converges and stronger restraints move less.
type fakeMinimizer struct {
	unavailable bool
	fail        bool
}

func (f fakeMinimizer) Available() bool { return !f.unavailable }

func (f fakeMinimizer) Minimize(_ context.Context, s *chem.Structure, r RestraintSpec, _ int, _ float64) (*chem.Structure, error) {
	if f.fail {
		return nil, errors.New("numerical divergence")
	}
	out := s.Copy()
	frac := 0.5 / (1.0 + r.Stiffness/100.0)
	for i := 0; i < out.Len(); i++ {
		v := out.Coords.Vec(i)
		out.Coords.SetVec(i, [3]float64{v[0] * (1 - frac), v[1] * (1 - frac), v[2] * (1 - frac)})
	}
	return out, nil
}

func TestRunSucceeds(Te *testing.T) {
	mol := testStructure(Te)
	res := Run(context.Background(), fakeMinimizer{}, Request{Structure: mol, Stiffness: 100}, zap.NewNop())
	assert.Equal(Te, Succeeded, res.State)
	assert.True(Te, res.Relaxed)
	require.NotNil(Te, res.Structure)
	//the input was not modified
	assert.Equal(Te, 1.45, mol.Coords.Vec(1)[0])
	assert.NotEqual(Te, 1.45, res.Structure.Coords.Vec(1)[0])
}

func TestRunSkippedWhenUnavailable(Te *testing.T) {
	mol := testStructure(Te)
	res := Run(context.Background(), fakeMinimizer{unavailable: true}, Request{Structure: mol}, zap.NewNop())
	assert.Equal(Te, Skipped, res.State)
	assert.False(Te, res.Relaxed)
	assert.Same(Te, mol, res.Structure)
}

func TestRunSkippedOnBadInput(Te *testing.T) {
	res := Run(context.Background(), fakeMinimizer{}, Request{Structure: nil}, zap.NewNop())
	assert.Equal(Te, Skipped, res.State)

	mol := testStructure(Te)
	res = Run(context.Background(), fakeMinimizer{}, Request{Structure: mol, Stiffness: -1}, zap.NewNop())
	assert.Equal(Te, Skipped, res.State)
	assert.Same(Te, mol, res.Structure)
}

func TestRunFailedReturnsOriginal(Te *testing.T) {
	mol := testStructure(Te)
	res := Run(context.Background(), fakeMinimizer{fail: true}, Request{Structure: mol}, zap.NewNop())
	assert.Equal(Te, Failed, res.State)
	assert.False(Te, res.Relaxed)
	assert.Same(Te, mol, res.Structure)
	assert.Contains(Te, res.Detail, "divergence")
}

func TestRunIdempotence(Te *testing.T) {
	//the second pass must move the structure less than the first
	mol := testStructure(Te)
	once := Run(context.Background(), fakeMinimizer{}, Request{Structure: mol, Stiffness: 100}, zap.NewNop())
	require.Equal(Te, Succeeded, once.State)
	twice := Run(context.Background(), fakeMinimizer{}, Request{Structure: once.Structure, Stiffness: 100}, zap.NewNop())
	require.Equal(Te, Succeeded, twice.State)

	d1, err := chem.RMSD(mol, once.Structure)
	require.NoError(Te, err)
	d2, err := chem.RMSD(once.Structure, twice.Structure)
	require.NoError(Te, err)
	assert.Less(Te, d2, d1)
}

func TestRunMonotonicRestraint(Te *testing.T) {
	//stiffness 500 must keep the structure closer to the original than
	//stiffness 0
	free := Run(context.Background(), fakeMinimizer{}, Request{Structure: testStructure(Te), Stiffness: 0}, zap.NewNop())
	stiff := Run(context.Background(), fakeMinimizer{}, Request{Structure: testStructure(Te), Stiffness: 500}, zap.NewNop())
	require.Equal(Te, Succeeded, free.State)
	require.Equal(Te, Succeeded, stiff.State)

	orig := testStructure(Te)
	dFree, err := chem.BackboneRMSD(orig, free.Structure)
	require.NoError(Te, err)
	dStiff, err := chem.BackboneRMSD(orig, stiff.Structure)
	require.NoError(Te, err)
	assert.Less(Te, dStiff, dFree)
}

func TestDriverUnavailable(Te *testing.T) {
	d := NewDriver()
	d.SetCommand("definitely-not-a-real-minimizer-binary")
	assert.False(Te, d.Available())
}

func TestDefaultAnchors(Te *testing.T) {
	assert.Equal(Te, []string{"N", "CA", "C"}, DefaultAnchors())
}
