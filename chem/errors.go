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

package chem

import "strings"

//Error messages for the chem package.
const (
	ErrNilData      = "godock/chem: nil atoms or coordinates"
	ErrInconsistent = "godock/chem: inconsistent atoms/coordinates"
	ErrCantOpen     = "godock/chem: can't open structure file"
	ErrBadPDBLine   = "godock/chem: malformed PDB atom record"
	ErrNoAtoms      = "godock/chem: no atoms read from file"
)

//Error is the error type for the chem package. File is the name of the
//structure file involved, if any. The deco slice records the call path.
type Error struct {
	message  string
	file     string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.file == "" {
		return err.message
	}
	return err.message + " (" + err.file + ")"
}

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

//FileName returns the name of the file associated to the error, if any.
func (err Error) FileName() string { return err.file }

//errorInt is satisfied by the decorated error types of this module.
type errorInt interface {
	Error() string
	Decorate(string) []string
}

//errDecorate adds the caller's name to the error's decoration slice if
//the error supports it, and returns the error unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(errorInt); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//used by the PDB reader to recognize the records it cares about.
func isAtomRecord(line string) bool {
	return strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM")
}
