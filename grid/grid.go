/*
 * grid.go, part of godock.
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

//Package grid computes the axis-aligned search volume ("grid box") that
//a docking engine samples ligand poses in. The box is derived fresh for
//every docking call from a pocket center and, when available, the ligand
//geometry; it is never persisted.
package grid

import (
	"fmt"
	"math"
	"strconv"

	"godock/v3"
)

//Box is an axis-aligned search volume: a center point and per-axis
//sizes, both in Angstroms.
type Box struct {
	CX, CY, CZ float64
	SX, SY, SZ float64
}

//VinaArgs renders the box as Vina-style command line arguments.
func (b Box) VinaArgs() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	return []string{
		"--center_x", f(b.CX),
		"--center_y", f(b.CY),
		"--center_z", f(b.CZ),
		"--size_x", f(b.SX),
		"--size_y", f(b.SY),
		"--size_z", f(b.SZ),
	}
}

func (b Box) String() string {
	return fmt.Sprintf("center (%.3f, %.3f, %.3f) size (%.1f, %.1f, %.1f)", b.CX, b.CY, b.CZ, b.SX, b.SY, b.SZ)
}

//Params are the sizing tunables. The clamp bounds are an engineering
//contract with the docking engine, not a physical law: below MinSize the
//search volume cannot contain typical drug-like ligands, above MaxSize
//the engine's sampling becomes unreliable and runtimes explode.
type Params struct {
	//MinSize and MaxSize clamp every computed size dimension, in A.
	MinSize float64
	MaxSize float64
	//DefaultSize is used per axis when no ligand geometry is supplied.
	DefaultSize float64
	//Buffer is the padding added on each side of the ligand extent.
	//Buffers under 15 A historically produced box-wall clash artifacts
	//(spurious high-energy poses near the boundary), so anything lower
	//must be an explicit user override.
	Buffer float64
}

//DefaultBuffer is the minimum buffer that avoids box-wall clash.
const DefaultBuffer = 15.0

//DefaultParams returns the documented sizing defaults.
func DefaultParams() Params {
	return Params{
		MinSize:     10.0,
		MaxSize:     60.0,
		DefaultSize: 20.0,
		Buffer:      DefaultBuffer,
	}
}

//Compute derives a Box from a pocket center and an optional ligand
//geometry. With a ligand, each size dimension is the ligand extent along
//that axis plus twice the buffer; without one, DefaultSize is used. The
//result is clamped into [MinSize, MaxSize] per axis. Non-finite center
//coordinates are a hard error, never coerced.
func Compute(center [3]float64, ligand *v3.Matrix, p Params) (Box, error) {
	for _, c := range center {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return Box{}, Error{fmt.Sprintf("%s: center (%v, %v, %v)", ErrBadGeometry, center[0], center[1], center[2]), []string{"Compute"}, true}
		}
	}
	size := [3]float64{p.DefaultSize, p.DefaultSize, p.DefaultSize}
	if ligand != nil {
		min, max := ligand.Extents()
		for j := 0; j < 3; j++ {
			if math.IsNaN(min[j]) || math.IsInf(min[j], 0) || math.IsNaN(max[j]) || math.IsInf(max[j], 0) {
				return Box{}, Error{ErrBadGeometry + ": non-finite ligand coordinates", []string{"Compute"}, true}
			}
			size[j] = (max[j] - min[j]) + 2*p.Buffer
		}
	}
	for j := 0; j < 3; j++ {
		size[j] = clamp(size[j], p.MinSize, p.MaxSize)
	}
	return Box{
		CX: center[0], CY: center[1], CZ: center[2],
		SX: size[0], SY: size[1], SZ: size[2],
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
