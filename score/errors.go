/*
 * errors.go, part of godock.
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
	"strconv"
	"strings"
)

//Error messages for the score package.
const (
	ErrAllScorersFailed = "godock/score: no scoring engine produced a valid result"
	ErrPrimaryMissing   = "godock/score: mandatory scoring engine not available"
	ErrBadMethod        = "godock/score: unknown consensus method"
	ErrImplausible      = "implausible affinity" //per-engine detail, not a fatal message
	ErrNoParse          = "could not parse engine output"
)

//Error is the error type for the score package.
type Error struct {
	message  string
	engine   string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string { return err.message }

//Engine returns the name of the scoring engine the error refers to, if
//any.
func (err Error) Engine() string { return err.engine }

//Decorate adds dec to the decoration slice of the error, unless dec is
//empty, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

type errorInt interface {
	Error() string
	Decorate(string) []string
}

func errDecorate(err error, caller string) error {
	if err2, ok := err.(errorInt); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//IsAllFailed reports whether err is the total-scoring-failure error,
//the single fatal condition of a docking call.
func IsAllFailed(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), ErrAllScorersFailed)
}

func formatAffinity(a float64) string {
	return strconv.FormatFloat(a, 'f', 2, 64)
}
