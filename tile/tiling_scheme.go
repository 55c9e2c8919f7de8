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

import (
	"fmt"

	"github.com/spatialio/tilegrid/common"
)

// ErrOutOfRange is reported for coordinates or tile indices outside the
// extent of a tiling scheme. It indicates a programming error in the
// caller, not a runtime condition to retry.
const ErrOutOfRange = common.ConstError("index out of range")

// Position identifies a single tile within a TilingScheme by its
// zero-based tile row and tile column indices.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("tile[%d,%d]", p.Row, p.Col)
}

// TilingScheme partitions a global 2D extent into a grid of fixed-size
// tiles. Tiles in the last tile row or column may be smaller than the
// nominal tile extent when the global extent is not an exact multiple of
// the tile extent. A scheme is immutable after construction.
type TilingScheme struct {
	global Extent // the full grid extent
	tile   Extent // the nominal extent of a single tile
	counts Extent // the number of tiles along each axis
}

// NewTilingScheme creates a tiling of the given global extent into tiles
// of the given nominal extent. Both extents must be positive in both
// dimensions.
func NewTilingScheme(global, tile Extent) (*TilingScheme, error) {
	if !global.IsValid() {
		return nil, fmt.Errorf("invalid global extent %v", global)
	}
	if !tile.IsValid() {
		return nil, fmt.Errorf("invalid tile extent %v", tile)
	}
	counts := Extent{
		Rows: (global.Rows + tile.Rows - 1) / tile.Rows,
		Cols: (global.Cols + tile.Cols - 1) / tile.Cols,
	}
	return &TilingScheme{global: global, tile: tile, counts: counts}, nil
}

// GlobalExtent returns the full extent of the tiled grid.
func (s *TilingScheme) GlobalExtent() Extent {
	return s.global
}

// TileExtent returns the nominal extent of a single tile.
func (s *TilingScheme) TileExtent() Extent {
	return s.tile
}

// TileCounts returns the number of tiles along each axis.
func (s *TilingScheme) TileCounts() Extent {
	return s.counts
}

// TileCount returns the total number of tiles in the scheme.
func (s *TilingScheme) TileCount() int {
	return s.counts.Cells()
}

// PositionForIndex returns the position of the tile with the given tile
// row and column indices, or ErrOutOfRange if the indices do not address
// a tile in this scheme.
func (s *TilingScheme) PositionForIndex(tileRow, tileCol int) (Position, error) {
	if tileRow < 0 || tileRow >= s.counts.Rows {
		return Position{}, fmt.Errorf("tile row index %d: %w", tileRow, ErrOutOfRange)
	}
	if tileCol < 0 || tileCol >= s.counts.Cols {
		return Position{}, fmt.Errorf("tile column index %d: %w", tileCol, ErrOutOfRange)
	}
	return Position{Row: tileRow, Col: tileCol}, nil
}

// PositionForCoords returns the position of the tile containing the given
// global coordinates, together with the coordinates relative to that
// tile's origin. It fails with ErrOutOfRange if the coordinates are
// outside the global extent.
func (s *TilingScheme) PositionForCoords(row, col int) (pos Position, localRow, localCol int, err error) {
	if row < 0 || row >= s.global.Rows {
		return Position{}, 0, 0, fmt.Errorf("row coordinate %d: %w", row, ErrOutOfRange)
	}
	if col < 0 || col >= s.global.Cols {
		return Position{}, 0, 0, fmt.Errorf("column coordinate %d: %w", col, ErrOutOfRange)
	}
	pos = Position{Row: row / s.tile.Rows, Col: col / s.tile.Cols}
	return pos, row % s.tile.Rows, col % s.tile.Cols, nil
}

// GlobalStart returns the global coordinates of the first cell of the
// tile at the given position.
func (s *TilingScheme) GlobalStart(pos Position) (row, col int) {
	return pos.Row * s.tile.Rows, pos.Col * s.tile.Cols
}

// ActualExtent returns the extent of the tile at the given position. The
// result equals the nominal tile extent except for tiles in the last tile
// row or column, which may be truncated by the global extent.
func (s *TilingScheme) ActualExtent(pos Position) Extent {
	res := s.tile
	if (pos.Row+1)*s.tile.Rows > s.global.Rows {
		res.Rows = s.global.Rows - pos.Row*s.tile.Rows
	}
	if (pos.Col+1)*s.tile.Cols > s.global.Cols {
		res.Cols = s.global.Cols - pos.Col*s.tile.Cols
	}
	return res
}

// Contains returns true if the global coordinates fall inside the tile at
// the given position.
func (s *TilingScheme) Contains(pos Position, row, col int) bool {
	startRow, startCol := s.GlobalStart(pos)
	extent := s.ActualExtent(pos)
	return row >= startRow && row < startRow+extent.Rows &&
		col >= startCol && col < startCol+extent.Cols
}

// CoveringPositions returns the minimal list of tile positions covering
// the rectangle of the given extent starting at the given global
// coordinates, in row-major order. It fails with ErrOutOfRange if the
// rectangle does not fit inside the global extent.
func (s *TilingScheme) CoveringPositions(startRow, startCol int, extent Extent) ([]Position, error) {
	if !extent.IsValid() {
		return nil, fmt.Errorf("invalid subset extent %v", extent)
	}
	min, _, _, err := s.PositionForCoords(startRow, startCol)
	if err != nil {
		return nil, err
	}
	max, _, _, err := s.PositionForCoords(startRow+extent.Rows-1, startCol+extent.Cols-1)
	if err != nil {
		return nil, err
	}
	res := make([]Position, 0, (max.Row-min.Row+1)*(max.Col-min.Col+1))
	for i := min.Row; i <= max.Row; i++ {
		for j := min.Col; j <= max.Col; j++ {
			res = append(res, Position{Row: i, Col: j})
		}
	}
	return res, nil
}
