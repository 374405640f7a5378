/*
 * score.go, part of godock.
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

//Package score wraps the external scoring engines and combines their
//affinities into a consensus value. One engine is mandatory; the rest
//are detected at startup and simply left out of the ensemble when
//absent. A single engine failing is never fatal; all of them failing
//is the one fatal condition of a docking call.
package score

import (
	"context"
	"math"
	"sync"
	"time"

	"godock/grid"
)

//Result is the outcome of one engine invocation. A failed invocation
//carries the captured detail instead of an affinity.
type Result struct {
	Engine    string  `json:"engine"`
	Affinity  float64 `json:"affinity,omitempty"` //kcal/mol, lower is stronger
	Succeeded bool    `json:"succeeded"`
	Detail    string  `json:"detail,omitempty"`
}

//Scorer is one scoring backend. Score never returns an error: every
//failure mode (crash, timeout, unparseable output) is folded into the
//Result so sibling engines keep running.
type Scorer interface {
	Name() string
	Available() bool
	Score(ctx context.Context, receptor, ligand string, box grid.Box) Result
}

//DefaultPlausibleBound is the widest |affinity| in kcal/mol accepted
//as a physically meaningful score. Real binding free energies sit
//within roughly -15..0; values far outside signal an exploded
//calculation (typically steric clashes), so they are recorded as
//engine failures rather than reported as scores. The bound is an
//engineering threshold, not a physical constant, and can be overridden
//through configuration.
const DefaultPlausibleBound = 50.0

//Options bound each engine invocation in a fan-out.
type Options struct {
	//Timeout per engine invocation; 0 means no per-engine deadline.
	Timeout time.Duration
	//PlausibleBound replaces DefaultPlausibleBound when >0.
	PlausibleBound float64
}

//checkPlausible downgrades a "successful" result whose affinity is
//non-finite or outside the plausibility window to a failure.
func checkPlausible(r Result, bound float64) Result {
	if !r.Succeeded {
		return r
	}
	if math.IsNaN(r.Affinity) || math.IsInf(r.Affinity, 0) {
		return Result{Engine: r.Engine, Succeeded: false, Detail: "non-finite affinity"}
	}
	if math.Abs(r.Affinity) > bound {
		return Result{Engine: r.Engine, Succeeded: false,
			Detail: ErrImplausible + ": " + formatAffinity(r.Affinity) + " kcal/mol"}
	}
	return r
}

//ScoreAll runs every scorer concurrently and collects the results into
//a name-keyed map, so downstream aggregation is deterministic no
//matter the completion order. Each invocation gets its own context so
//a slow engine times out without cancelling its siblings.
func ScoreAll(ctx context.Context, scorers []Scorer, receptor, ligand string, box grid.Box, o Options) map[string]Result {
	bound := o.PlausibleBound
	if bound <= 0 {
		bound = DefaultPlausibleBound
	}
	out := make(map[string]Result, len(scorers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, sc := range scorers {
		wg.Add(1)
		go func(sc Scorer) {
			defer wg.Done()
			ectx := ctx
			if o.Timeout > 0 {
				var cancel context.CancelFunc
				ectx, cancel = context.WithTimeout(ctx, o.Timeout)
				defer cancel()
			}
			r := checkPlausible(sc.Score(ectx, receptor, ligand, box), bound)
			mu.Lock()
			out[sc.Name()] = r
			mu.Unlock()
		}(sc)
	}
	wg.Wait()
	return out
}
