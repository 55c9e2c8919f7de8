// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tile

import "fmt"

// Tile is one rectangular sub-block of a grid: a position within a
// tiling scheme together with the decoded cell values of that block in
// row-major order. Tiles obtained from a source or a cache are shared
// and must not be modified; a caller that needs to write clones the tile
// first and mutates the private copy.
type Tile struct {
	pos    Position
	extent Extent
	data   Buffer
}

// New creates a tile at the given position with the given extent and
// payload. The payload length must match the extent.
func New(pos Position, extent Extent, data Buffer) (*Tile, error) {
	if data.Len() != extent.Cells() {
		return nil, fmt.Errorf("payload length %d does not match extent %v", data.Len(), extent)
	}
	return &Tile{pos: pos, extent: extent, data: data}, nil
}

// Position returns the position of this tile within its tiling scheme.
func (t *Tile) Position() Position {
	return t.pos
}

// Extent returns the actual extent of this tile. Tiles at the lower or
// right boundary of the grid may be smaller than the nominal tile extent.
func (t *Tile) Extent() Extent {
	return t.extent
}

// Type returns the element type of the cells in this tile.
func (t *Tile) Type() ElementType {
	return t.data.Type()
}

// Data returns the payload of this tile. The result is shared with the
// tile and must not be modified unless the tile itself is private.
func (t *Tile) Data() Buffer {
	return t.data
}

// SizeInBytes returns the storage size of the tile's payload. It is the
// tile's footprint for cache accounting.
func (t *Tile) SizeInBytes() int {
	return t.data.SizeInBytes()
}

// Get returns the cell value at the given tile-local coordinates.
func (t *Tile) Get(localRow, localCol int) float64 {
	return t.data.Get(localRow*t.extent.Cols + localCol)
}

// Set updates the cell value at the given tile-local coordinates. It
// must only be called on private tiles, see Clone.
func (t *Tile) Set(localRow, localCol int, value float64) {
	t.data.Set(localRow*t.extent.Cols+localCol, value)
}

// Clone returns a deep copy of this tile that may be modified without
// affecting the original.
func (t *Tile) Clone() *Tile {
	return &Tile{pos: t.pos, extent: t.extent, data: t.data.Clone()}
}
