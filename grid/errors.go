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

package grid

import "strings"

//Error messages for the grid package.
const (
	ErrBadGeometry   = "godock/grid: non-finite box geometry"
	ErrNoSuchPocket  = "godock/grid: pocket not found"
	ErrPocketsConfig = "godock/grid: can't load pocket definitions"
)

//Error is the error type for the grid package.
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

//IsBadGeometry reports whether err is a non-finite-geometry error from
//this package.
func IsBadGeometry(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), ErrBadGeometry)
}
