/*
 * record_test.go, part of godock.
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
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godock/score"
)

func TestRecordNullableFields(Te *testing.T) {
	rec := &Record{
		RunID:           "test",
		Timestamp:       time.Now().UTC(),
		PrimaryAffinity: -7.43,
	}
	b, err := rec.JSON()
	require.NoError(Te, err)
	s := string(b)
	//absent consensus must be an explicit null, not a zero
	assert.Contains(Te, s, `"consensus_affinity_kcal_mol": null`)
	assert.Contains(Te, s, `"consensus_uncertainty_kcal_mol": null`)
	assert.Contains(Te, s, `"mutation": null`)
	assert.Contains(Te, s, `"relaxed": null`)
	assert.False(Te, strings.Contains(s, "per_engine"))
}

func TestRecordJSONRoundTrip(Te *testing.T) {
	aff := -6.44
	unc := 0.66
	mut := "A:87:D:G"
	relaxed := true
	stiffness := 500.0
	rec := &Record{
		RunID:             "abc",
		Timestamp:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		PrimaryAffinity:   -7.43,
		ConsensusAffinity: &aff,
		Uncertainty:       &unc,
		ConsensusMethod:   "mean",
		PerEngine: []score.Result{
			{Engine: "vina", Affinity: -7.43, Succeeded: true},
			{Engine: "gnina", Succeeded: false, Detail: "timed out"},
		},
		Mutation:  &mut,
		Relaxed:   &relaxed,
		Stiffness: &stiffness,
	}
	b, err := rec.JSON()
	require.NoError(Te, err)
	var back Record
	require.NoError(Te, json.Unmarshal(b, &back))
	assert.Equal(Te, rec.RunID, back.RunID)
	require.NotNil(Te, back.ConsensusAffinity)
	assert.Equal(Te, aff, *back.ConsensusAffinity)
	require.Len(Te, back.PerEngine, 2)
	assert.Equal(Te, "timed out", back.PerEngine[1].Detail)
	require.NotNil(Te, back.Stiffness)
	assert.Equal(Te, 500.0, *back.Stiffness)
}

func TestRecordArchiveRoundTrip(Te *testing.T) {
	aff := -6.44
	rec := &Record{
		RunID:             "archived",
		Timestamp:         time.Now().UTC().Truncate(time.Second),
		PrimaryAffinity:   -7.43,
		ConsensusAffinity: &aff,
	}
	path := filepath.Join(Te.TempDir(), "run.json.gz")
	require.NoError(Te, rec.WriteArchive(path))
	back, err := ReadArchive(path)
	require.NoError(Te, err)
	assert.Equal(Te, rec.RunID, back.RunID)
	require.NotNil(Te, back.ConsensusAffinity)
	assert.Equal(Te, aff, *back.ConsensusAffinity)
}
