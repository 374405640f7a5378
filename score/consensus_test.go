/*
 * consensus_test.go, part of godock.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ensemble() []Result {
	return []Result{
		{Engine: "vina", Affinity: -7.43, Succeeded: true},
		{Engine: "gnina", Affinity: -5.98, Succeeded: true},
		{Engine: "rf_score", Affinity: -5.90, Succeeded: true},
	}
}

func TestAggregateMean(Te *testing.T) {
	c, err := Aggregate(ensemble(), Mean, "vina")
	require.NoError(Te, err)
	assert.InDelta(Te, -6.437, c.Affinity, 0.005)
	//population standard deviation of the three affinities
	assert.InDelta(Te, 0.7031, c.Uncertainty, 0.001)
	assert.Equal(Te, -7.43, c.PrimaryAffinity)
	assert.Equal(Te, []string{"gnina", "rf_score", "vina"}, c.Engines)
}

func TestAggregateMedian(Te *testing.T) {
	c, err := Aggregate(ensemble(), Median, "vina")
	require.NoError(Te, err)
	assert.Equal(Te, -5.98, c.Affinity)

	even := append(ensemble(), Result{Engine: "extra", Affinity: -6.02, Succeeded: true})
	c, err = Aggregate(even, Median, "vina")
	require.NoError(Te, err)
	assert.InDelta(Te, -6.0, c.Affinity, 1e-12)
}

func TestAggregateWeighted(Te *testing.T) {
	c, err := Aggregate(ensemble(), Weighted, "vina")
	require.NoError(Te, err)
	//0.5*vina + 0.25 each for the other two
	assert.InDelta(Te, -6.685, c.Affinity, 1e-9)
}

func TestAggregateWeightedWithoutPrimary(Te *testing.T) {
	results := []Result{
		{Engine: "vina", Succeeded: false, Detail: "crashed"},
		{Engine: "gnina", Affinity: -6.0, Succeeded: true},
		{Engine: "rf_score", Affinity: -5.0, Succeeded: true},
	}
	c, err := Aggregate(results, Weighted, "vina")
	require.NoError(Te, err)
	assert.InDelta(Te, -5.5, c.Affinity, 1e-12)
}

func TestAggregateSingleSuccess(Te *testing.T) {
	//graceful degradation: consensus equals the primary affinity and
	//the uncertainty is 0.0, never absent
	results := []Result{
		{Engine: "vina", Affinity: -7.43, Succeeded: true},
		{Engine: "gnina", Succeeded: false, Detail: "timed out"},
	}
	for _, m := range []Method{Mean, Median, Weighted} {
		c, err := Aggregate(results, m, "vina")
		require.NoError(Te, err)
		assert.Equal(Te, -7.43, c.Affinity)
		assert.Equal(Te, 0.0, c.Uncertainty)
	}
}

func TestAggregateAllFailed(Te *testing.T) {
	results := []Result{
		{Engine: "vina", Succeeded: false},
		{Engine: "gnina", Succeeded: false},
	}
	_, err := Aggregate(results, Mean, "vina")
	require.Error(Te, err)
	assert.True(Te, IsAllFailed(err))
}

func TestAggregateOrderIndependent(Te *testing.T) {
	base := ensemble()
	perms := [][]Result{
		{base[0], base[1], base[2]},
		{base[2], base[0], base[1]},
		{base[1], base[2], base[0]},
	}
	for _, m := range []Method{Mean, Median, Weighted} {
		ref, err := Aggregate(perms[0], m, "vina")
		require.NoError(Te, err)
		for _, p := range perms[1:] {
			c, err := Aggregate(p, m, "vina")
			require.NoError(Te, err)
			assert.Equal(Te, ref, c)
		}
	}
}

func TestParseMethod(Te *testing.T) {
	for _, s := range []string{"mean", "median", "weighted"} {
		m, err := ParseMethod(s)
		require.NoError(Te, err)
		assert.Equal(Te, Method(s), m)
	}
	_, err := ParseMethod("mode")
	assert.Error(Te, err)
}
