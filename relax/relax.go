/*
 * relax.go, part of godock.
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

//Package relax runs the post-mutation energy relaxation stage. The
//stage never fails the pipeline: whatever goes wrong, the caller gets
//a usable structure back, with the outcome named in the result so a
//degraded run is observable instead of silent.
package relax

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"godock/chem"
	"godock/v3"
)

//Terminal states of the relaxation stage.
type State string

const (
	Skipped   State = "skipped"
	Failed    State = "failed"
	Succeeded State = "succeeded"
)

//Request describes one relaxation. Stiffness is the backbone restraint
//spring constant in kJ/mol/nm^2; 0 leaves the whole structure free,
//values in the hundreds keep the fold while side chains resolve
//clashes, >=1000 effectively freezes the backbone.
type Request struct {
	Structure     *chem.Structure
	Stiffness     float64
	MaxIterations int
	Tolerance     float64 //energy gradient threshold, kJ/mol
}

//Result carries the structure to use downstream plus the terminal
//state of the stage. Structure is never nil when the input structure
//was valid: on Skipped and Failed it is the unmodified input.
type Result struct {
	Structure *chem.Structure
	Relaxed   bool
	State     State
	Detail    string
}

//RestraintSpec defines the harmonic positional restraint applied
//during minimization. AnchorNames selects the restrained atoms by PDB
//name; it is a field rather than a constant so a finer, per-residue
//selection can be introduced without changing the Minimizer contract.
type RestraintSpec struct {
	Stiffness   float64
	AnchorNames []string
	//Reference holds the pre-relaxation coordinates the anchors are
	//pulled toward.
	Reference *v3.Matrix
}

//DefaultAnchors returns the canonical backbone anchors.
func DefaultAnchors() []string {
	return []string{"N", "CA", "C"}
}

//Minimizer is the boundary to the physics engine.
type Minimizer interface {
	Available() bool
	Minimize(ctx context.Context, s *chem.Structure, r RestraintSpec, maxIter int, tol float64) (*chem.Structure, error)
}

const defaultMaxIterations = 1000

//Run relaxes the structure in req with m. Every outcome returns a
//Result; errors inside the stage are absorbed into the Failed and
//Skipped states, so the caller can always keep going with
//Result.Structure.
func Run(ctx context.Context, m Minimizer, req Request, log *zap.Logger) Result {
	fail := func(st State, detail string) Result {
		log.Warn("relaxation did not run",
			zap.String("state", string(st)),
			zap.String("detail", detail),
		)
		return Result{Structure: req.Structure, Relaxed: false, State: st, Detail: detail}
	}
	//input check
	if req.Structure == nil || req.Structure.Len() == 0 {
		return fail(Skipped, "no structure to relax")
	}
	if req.Stiffness < 0 {
		return fail(Skipped, fmt.Sprintf("negative restraint stiffness %.2f", req.Stiffness))
	}
	//engine/force-field check
	if m == nil || !m.Available() {
		return fail(Skipped, "physics engine unavailable")
	}
	maxIter := req.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	r := RestraintSpec{
		Stiffness:   req.Stiffness,
		AnchorNames: DefaultAnchors(),
		Reference:   req.Structure.Coords.Copy(),
	}
	//minimization
	relaxed, err := m.Minimize(ctx, req.Structure, r, maxIter, req.Tolerance)
	if err != nil {
		return fail(Failed, err.Error())
	}
	if relaxed == nil || relaxed.Len() != req.Structure.Len() {
		return fail(Failed, ErrBadOutput)
	}
	log.Info("relaxed structure",
		zap.Float64("stiffness", req.Stiffness),
		zap.Int("max_iterations", maxIter),
		zap.Int("atoms", relaxed.Len()),
	)
	return Result{Structure: relaxed, Relaxed: true, State: Succeeded}
}
