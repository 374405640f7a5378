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

package prep

//Error messages for the prep package.
const (
	ErrConversion     = "godock/prep: format conversion failed"
	ErrBadPDBQT       = "godock/prep: invalid PDBQT file"
	ErrLigandNotFound = "godock/prep: ligand residue not found"
)

//Error is the error type for the prep package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string { return err.message }

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
