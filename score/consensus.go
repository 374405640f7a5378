/*
 * consensus.go, part of godock.
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
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

//Method selects how the per-engine affinities are combined.
type Method string

const (
	Mean     Method = "mean"
	Median   Method = "median"
	Weighted Method = "weighted"
)

//ParseMethod validates a consensus method given on the command line.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case Mean, Median, Weighted:
		return Method(s), nil
	}
	return "", Error{fmt.Sprintf("%s: %q", ErrBadMethod, s), "", []string{"ParseMethod"}, true}
}

//Consensus combines the ensemble's affinities. PrimaryAffinity is the
//mandatory engine's raw value, carried unmodified alongside the
//aggregate so single-engine artifacts stay visible.
type Consensus struct {
	Affinity        float64
	Uncertainty     float64
	Method          Method
	PrimaryAffinity float64
	//Engines that contributed to the aggregate, sorted by name.
	Engines []string
}

type scored struct {
	name string
	aff  float64
}

//Aggregate combines the succeeded results into a consensus affinity.
//It is deterministic under any ordering of results. With a single
//succeeded engine the consensus equals that engine's affinity and the
//uncertainty is 0.0; with none the call fails with the
//all-scorers-failed error, the one fatal condition of a docking run.
func Aggregate(results []Result, method Method, primary string) (*Consensus, error) {
	var ok []scored
	for _, r := range results {
		if r.Succeeded {
			ok = append(ok, scored{r.Engine, r.Affinity})
		}
	}
	if len(ok) == 0 {
		return nil, Error{ErrAllScorersFailed, "", []string{"Aggregate"}, true}
	}
	sort.Slice(ok, func(i, j int) bool { return ok[i].name < ok[j].name })

	affs := make([]float64, len(ok))
	names := make([]string, len(ok))
	primaryAff := math.NaN()
	for i, s := range ok {
		affs[i] = s.aff
		names[i] = s.name
		if s.name == primary {
			primaryAff = s.aff
		}
	}

	var c float64
	switch method {
	case Mean:
		c = stat.Mean(affs, nil)
	case Median:
		c = median(affs)
	case Weighted:
		c = weighted(ok, primary)
	default:
		return nil, Error{fmt.Sprintf("%s: %q", ErrBadMethod, method), "", []string{"Aggregate"}, true}
	}
	return &Consensus{
		Affinity:        c,
		Uncertainty:     popStdDev(affs),
		Method:          method,
		PrimaryAffinity: primaryAff,
		Engines:         names,
	}, nil
}

func median(affs []float64) float64 {
	s := make([]float64, len(affs))
	copy(s, affs)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

//weighted gives the primary engine weight 0.5 and splits the remainder
//evenly. When the primary did not succeed there is nothing to anchor
//the weighting on, so it degrades to a plain mean.
func weighted(ok []scored, primary string) float64 {
	if len(ok) == 1 {
		return ok[0].aff
	}
	var primaryAff float64
	var rest []float64
	hasPrimary := false
	for _, s := range ok {
		if s.name == primary {
			primaryAff = s.aff
			hasPrimary = true
			continue
		}
		rest = append(rest, s.aff)
	}
	if !hasPrimary {
		affs := make([]float64, len(ok))
		for i, s := range ok {
			affs[i] = s.aff
		}
		return stat.Mean(affs, nil)
	}
	w := 0.5 / float64(len(rest))
	c := 0.5 * primaryAff
	for _, a := range rest {
		c += w * a
	}
	return c
}

//popStdDev is the population standard deviation. gonum's stat.StdDev
//applies Bessel's correction, which is not wanted here: the ensemble
//is the whole population of engines, not a sample from one.
func popStdDev(affs []float64) float64 {
	if len(affs) < 2 {
		return 0.0
	}
	m := stat.Mean(affs, nil)
	var ss float64
	for _, a := range affs {
		d := a - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(affs)))
}
