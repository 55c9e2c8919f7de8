// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package memory provides a volatile in-memory tile store, mainly for
// tests and for staging data that never touches a file.
package memory

import (
	"fmt"

	"github.com/spatialio/tilegrid/tile"
	"github.com/spatialio/tilegrid/tile/chunk"
)

// Store keeps a full 2D variable in one flat in-memory buffer. It
// implements the writable chunk store interface, optionally simulating
// a native chunk layout so the fast read path can be tested against a
// store with known content.
type Store struct {
	global  tile.Extent
	data    tile.Buffer
	chunk   tile.Extent
	chunked bool
}

var _ chunk.WritableStore = &Store{}

// NewStore creates a zero-initialized in-memory store of the given
// extent and element type.
func NewStore(global tile.Extent, typ tile.ElementType) (*Store, error) {
	if !global.IsValid() {
		return nil, fmt.Errorf("invalid store extent %v", global)
	}
	return &Store{global: global, data: tile.NewBuffer(typ, global.Cells())}, nil
}

// NewStoreOf creates an in-memory store over the given row-major data.
func NewStoreOf(global tile.Extent, data tile.Buffer) (*Store, error) {
	if data.Len() != global.Cells() {
		return nil, fmt.Errorf("data length %d does not match extent %v", data.Len(), global)
	}
	return &Store{global: global, data: data}, nil
}

// SimulateChunking makes the store report the given native chunk
// geometry and serve whole-chunk reads.
func (s *Store) SimulateChunking(extent tile.Extent) {
	s.chunk = extent
	s.chunked = true
}

func (s *Store) GlobalExtent() tile.Extent { return s.global }

func (s *Store) Type() tile.ElementType { return s.data.Type() }

func (s *Store) NativeChunkExtent() (tile.Extent, bool) { return s.chunk, s.chunked }

func (s *Store) ReadChunk(chunkRow, chunkCol int) (tile.Buffer, error) {
	if !s.chunked {
		return tile.Buffer{}, fmt.Errorf("store is not chunked")
	}
	startRow := chunkRow * s.chunk.Rows
	startCol := chunkCol * s.chunk.Cols
	if startRow >= s.global.Rows || startCol >= s.global.Cols {
		return tile.Buffer{}, fmt.Errorf("chunk (%d,%d): %w", chunkRow, chunkCol, tile.ErrOutOfRange)
	}
	res := tile.NewBuffer(s.data.Type(), s.chunk.Cells())
	rows := min(s.chunk.Rows, s.global.Rows-startRow)
	cols := min(s.chunk.Cols, s.global.Cols-startCol)
	for r := 0; r < rows; r++ {
		res.Copy(r*s.chunk.Cols, s.data, (startRow+r)*s.global.Cols+startCol, cols)
	}
	return res, nil
}

func (s *Store) ReadRect(row, col int, extent tile.Extent) (tile.Buffer, error) {
	if err := s.checkRect(row, col, extent); err != nil {
		return tile.Buffer{}, err
	}
	res := tile.NewBuffer(s.data.Type(), extent.Cells())
	for r := 0; r < extent.Rows; r++ {
		res.Copy(r*extent.Cols, s.data, (row+r)*s.global.Cols+col, extent.Cols)
	}
	return res, nil
}

func (s *Store) WriteRect(row, col int, extent tile.Extent, data tile.Buffer) error {
	if err := s.checkRect(row, col, extent); err != nil {
		return err
	}
	if data.Len() != extent.Cells() {
		return fmt.Errorf("data length %d does not match extent %v", data.Len(), extent)
	}
	for r := 0; r < extent.Rows; r++ {
		s.data.Copy((row+r)*s.global.Cols+col, data, r*extent.Cols, extent.Cols)
	}
	return nil
}

func (s *Store) checkRect(row, col int, extent tile.Extent) error {
	if !extent.IsValid() || row < 0 || col < 0 ||
		row+extent.Rows > s.global.Rows || col+extent.Cols > s.global.Cols {
		return fmt.Errorf("rectangle at (%d,%d) of extent %v: %w", row, col, extent, tile.ErrOutOfRange)
	}
	return nil
}

// NewSource creates a tile source over a fresh zero-initialized
// in-memory store, tiled with the given tile extent.
func NewSource(global, tileExtent tile.Extent, typ tile.ElementType) (*chunk.Producer, error) {
	store, err := NewStore(global, typ)
	if err != nil {
		return nil, err
	}
	return chunk.NewProducerWithExtent(store, tileExtent)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
