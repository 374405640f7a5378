/*
 * registry.go, part of godock.
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

package score

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"godock/grid"
)

//Registry is the availability snapshot of the scoring ensemble,
//computed once at startup and read-only afterwards. The primary engine
//comes first in the declaration order; that order drives the
//per-engine breakdown in the result record.
type Registry struct {
	scorers []Scorer
	primary string
}

//Detect probes the primary engine and every optional engine. Optional
//engines that are not installed are left out, with a warning; a
//missing primary engine is an error, since the pipeline cannot produce
//any affinity without it.
func Detect(log *zap.Logger, primary Scorer, optional ...Scorer) (*Registry, error) {
	if !primary.Available() {
		return nil, Error{fmt.Sprintf("%s: %s", ErrPrimaryMissing, primary.Name()),
			primary.Name(), []string{"Detect"}, true}
	}
	R := &Registry{scorers: []Scorer{primary}, primary: primary.Name()}
	for _, sc := range optional {
		if !sc.Available() {
			log.Warn("optional scoring engine not found, excluded from ensemble",
				zap.String("engine", sc.Name()))
			continue
		}
		R.scorers = append(R.scorers, sc)
	}
	log.Info("scoring ensemble detected", zap.Strings("engines", R.Names()))
	return R, nil
}

//Scorers returns the detected engines, primary first.
func (R *Registry) Scorers() []Scorer {
	out := make([]Scorer, len(R.scorers))
	copy(out, R.scorers)
	return out
}

//Primary returns the name of the mandatory engine.
func (R *Registry) Primary() string { return R.primary }

//Names returns the engine names in declaration order.
func (R *Registry) Names() []string {
	names := make([]string, len(R.scorers))
	for i, sc := range R.scorers {
		names[i] = sc.Name()
	}
	return names
}

//ScoreAll fans the receptor/ligand pair out to every detected engine.
func (R *Registry) ScoreAll(ctx context.Context, receptor, ligand string, box grid.Box, o Options) map[string]Result {
	return ScoreAll(ctx, R.scorers, receptor, ligand, box, o)
}
