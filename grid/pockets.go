/*
 * pockets.go, part of godock.
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

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

//Pocket is a named binding-site definition: a center, and optionally a
//fixed box size overriding the computed one.
type Pocket struct {
	Center [3]float64
	//Size is used verbatim when all three components are positive;
	//otherwise the box is sized from the ligand geometry as usual.
	Size [3]float64
}

//Pockets maps pocket names to their definitions.
type Pockets map[string]Pocket

//LoadPockets reads pocket definitions from a YAML file of the form
//
//	pockets:
//	  gyrase_qrdr:
//	    center_x: 12.1
//	    center_y: -3.4
//	    center_z: 25.0
//	    size_x: 24.0    # optional
//	    ...
func LoadPockets(path string) (Pockets, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	if err := vp.ReadInConfig(); err != nil {
		return nil, Error{fmt.Sprintf("%s: %s: %s", ErrPocketsConfig, path, err.Error()), []string{"viper.ReadInConfig", "LoadPockets"}, true}
	}
	raw := vp.GetStringMap("pockets")
	if len(raw) == 0 {
		return nil, Error{fmt.Sprintf("%s: %s: no 'pockets' section", ErrPocketsConfig, path), []string{"LoadPockets"}, true}
	}
	ret := make(Pockets, len(raw))
	for name := range raw {
		sub := vp.Sub("pockets." + name)
		if sub == nil {
			continue
		}
		for _, k := range []string{"center_x", "center_y", "center_z"} {
			if !sub.IsSet(k) {
				return nil, Error{fmt.Sprintf("%s: pocket %q is missing %s", ErrPocketsConfig, name, k), []string{"LoadPockets"}, true}
			}
		}
		p := Pocket{
			Center: [3]float64{sub.GetFloat64("center_x"), sub.GetFloat64("center_y"), sub.GetFloat64("center_z")},
			Size:   [3]float64{sub.GetFloat64("size_x"), sub.GetFloat64("size_y"), sub.GetFloat64("size_z")},
		}
		ret[name] = p
	}
	return ret, nil
}

//Get returns the pocket with the given name. The error lists the
//available pocket names, so a typo is immediately actionable.
func (ps Pockets) Get(name string) (Pocket, error) {
	p, ok := ps[name]
	if !ok {
		names := make([]string, 0, len(ps))
		for k := range ps {
			names = append(names, k)
		}
		sort.Strings(names)
		return Pocket{}, Error{fmt.Sprintf("%s: %q (available: %s)", ErrNoSuchPocket, name, strings.Join(names, ", ")), []string{"Get"}, true}
	}
	return p, nil
}

//Fixed reports whether the pocket carries a fixed, fully specified size.
func (p Pocket) Fixed() bool {
	return p.Size[0] > 0 && p.Size[1] > 0 && p.Size[2] > 0
}

//Box returns the pocket's fixed box, clamped into the params bounds.
//Only meaningful when Fixed() is true.
func (p Pocket) Box(params Params) Box {
	return Box{
		CX: p.Center[0], CY: p.Center[1], CZ: p.Center[2],
		SX: clamp(p.Size[0], params.MinSize, params.MaxSize),
		SY: clamp(p.Size[1], params.MinSize, params.MaxSize),
		SZ: clamp(p.Size[2], params.MinSize, params.MaxSize),
	}
}
