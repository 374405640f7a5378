/*
 * report_test.go, part of godock.
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

package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godock/dock"
	"godock/score"
)

func TestPlot(Te *testing.T) {
	aff := -6.44
	rec := &dock.Record{
		RunID:             "plotme",
		PrimaryAffinity:   -7.43,
		ConsensusAffinity: &aff,
		PerEngine: []score.Result{
			{Engine: "vina", Affinity: -7.43, Succeeded: true},
			{Engine: "gnina", Affinity: -5.98, Succeeded: true},
			{Engine: "rf_score", Succeeded: false, Detail: "crashed"},
		},
	}
	out := filepath.Join(Te.TempDir(), "affinities.png")
	require.NoError(Te, Plot(rec, out))
	assert.FileExists(Te, out)
}

func TestPlotNoScores(Te *testing.T) {
	err := Plot(&dock.Record{RunID: "empty"}, filepath.Join(Te.TempDir(), "x.png"))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), ErrNoScores)

	assert.Error(Te, Plot(nil, "y.png"))
}
