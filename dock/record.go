/*
 * record.go, part of godock.
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
	"os"
	"time"

	"github.com/klauspost/compress/gzip"

	"godock/score"
)

//Record is the persisted result of one docking run, consumed by
//downstream reporting tools. Optional stages leave nil fields, which
//encode as JSON null so a missing consensus is distinguishable from a
//zero one.
type Record struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`

	Receptor string `json:"receptor"`
	Ligand   string `json:"ligand"`
	PosePath string `json:"pose_path,omitempty"`

	//PrimaryAffinity is the mandatory engine's docking score, kept
	//verbatim next to any consensus value.
	PrimaryAffinity   float64        `json:"primary_affinity_kcal_mol"`
	ConsensusAffinity *float64       `json:"consensus_affinity_kcal_mol"`
	Uncertainty       *float64       `json:"consensus_uncertainty_kcal_mol"`
	ConsensusMethod   string         `json:"consensus_method,omitempty"`
	PerEngine         []score.Result `json:"per_engine,omitempty"`

	Mutation  *string  `json:"mutation"`
	Relaxed   *bool    `json:"relaxed"`
	Stiffness *float64 `json:"stiffness_kj_mol_nm2"`
}

//JSON returns the record as indented JSON.
func (R *Record) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(R, "", "  ")
	if err != nil {
		return nil, Error{ErrRecord + ": " + err.Error(), []string{"JSON"}, true}
	}
	return b, nil
}

//Write writes the record as JSON to path.
func (R *Record) Write(path string) error {
	b, err := R.JSON()
	if err != nil {
		return errDecorate(err, "Write")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return Error{ErrRecord + ": " + err.Error(), []string{"Write"}, true}
	}
	return nil
}

//WriteArchive writes the record as gzipped JSON, for runs archived in
//bulk.
func (R *Record) WriteArchive(path string) error {
	b, err := R.JSON()
	if err != nil {
		return errDecorate(err, "WriteArchive")
	}
	f, err := os.Create(path)
	if err != nil {
		return Error{ErrRecord + ": " + err.Error(), []string{"WriteArchive"}, true}
	}
	defer f.Close()
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(b); err != nil {
		zw.Close()
		return Error{ErrRecord + ": " + err.Error(), []string{"WriteArchive"}, true}
	}
	return zw.Close()
}

//ReadArchive reads a record written by WriteArchive.
func ReadArchive(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{ErrRecord + ": " + err.Error(), []string{"ReadArchive"}, true}
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, Error{ErrRecord + ": " + err.Error(), []string{"ReadArchive"}, true}
	}
	defer zr.Close()
	var rec Record
	if err := json.NewDecoder(zr).Decode(&rec); err != nil {
		return nil, Error{ErrRecord + ": " + err.Error(), []string{"ReadArchive"}, true}
	}
	return &rec, nil
}
