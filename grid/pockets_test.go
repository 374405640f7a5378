/*
 * pockets_test.go, part of godock.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pocketsYAML = `pockets:
  default:
    center_x: 12.1
    center_y: -3.4
    center_z: 25.0
  qrdr:
    center_x: 0.0
    center_y: 1.0
    center_z: 2.0
    size_x: 24.0
    size_y: 24.0
    size_z: 24.0
`

func writePockets(Te *testing.T, content string) string {
	path := filepath.Join(Te.TempDir(), "pockets.yaml")
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPockets(Te *testing.T) {
	ps, err := LoadPockets(writePockets(Te, pocketsYAML))
	require.NoError(Te, err)
	require.Len(Te, ps, 2)

	def, err := ps.Get("default")
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{12.1, -3.4, 25.0}, def.Center)
	assert.False(Te, def.Fixed())

	qrdr, err := ps.Get("qrdr")
	require.NoError(Te, err)
	assert.True(Te, qrdr.Fixed())
	b := qrdr.Box(DefaultParams())
	assert.Equal(Te, 24.0, b.SX)
}

func TestGetUnknownPocketListsNames(Te *testing.T) {
	ps, err := LoadPockets(writePockets(Te, pocketsYAML))
	require.NoError(Te, err)
	_, err = ps.Get("nope")
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "default")
	assert.Contains(Te, err.Error(), "qrdr")
}

func TestLoadPocketsMissingCenter(Te *testing.T) {
	_, err := LoadPockets(writePockets(Te, "pockets:\n  broken:\n    center_x: 1.0\n"))
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "center_y")
}

func TestLoadPocketsMissingFile(Te *testing.T) {
	_, err := LoadPockets(filepath.Join(Te.TempDir(), "absent.yaml"))
	require.Error(Te, err)
}
