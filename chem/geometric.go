/*
 * geometric.go, part of godock.
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

import (
	"godock/v3"
)

//RMSD returns the root mean square deviation between the coordinates of
//a and b, without superposition. Both structures must have the same
//number of atoms.
func RMSD(a, b *Structure) (float64, error) {
	r, err := v3.RMSD(a.Coords, b.Coords)
	if err != nil {
		return 0, errDecorate(err, "RMSD")
	}
	return r, nil
}

//BackboneRMSD returns the RMSD between the backbone anchor atoms
//(N, CA, C) of a and b. The backbone selections of both structures must
//match atom for atom, which holds for any pair of structures derived
//from the same input by mutation and/or relaxation.
func BackboneRMSD(a, b *Structure) (float64, error) {
	ai := a.BackboneIndices()
	bi := b.BackboneIndices()
	ac, err := a.Coords.SomeVecs(ai)
	if err != nil {
		return 0, errDecorate(err, "BackboneRMSD")
	}
	bc, err := b.Coords.SomeVecs(bi)
	if err != nil {
		return 0, errDecorate(err, "BackboneRMSD")
	}
	r, err := v3.RMSD(ac, bc)
	if err != nil {
		return 0, errDecorate(err, "BackboneRMSD")
	}
	return r, nil
}

//GeometricCenter returns the unweighted centroid of the structure's
//coordinates.
func GeometricCenter(S *Structure) [3]float64 {
	var c [3]float64
	n := S.Coords.NVecs()
	for i := 0; i < n; i++ {
		v := S.Coords.Vec(i)
		for j := 0; j < 3; j++ {
			c[j] += v[j]
		}
	}
	for j := 0; j < 3; j++ {
		c[j] /= float64(n)
	}
	return c
}
