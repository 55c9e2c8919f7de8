// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package chunk

import (
	"github.com/spatialio/tilegrid/tile"
)

//go:generate mockgen -source store.go -destination store_mocks.go -package chunk

// Store is the raw-data interface a format adapter offers to the tile
// layer. It abstracts one open 2D variable of a dataset: the full
// extent, the element type, and two ways of reading cell data.
//
// Stores whose physical layout is itself chunked report their chunk
// geometry via NativeChunkExtent and serve whole chunks via ReadChunk.
// All stores serve arbitrary rectangles via ReadRect; for chunked
// stores this is typically slower than reading aligned chunks.
type Store interface {
	// GlobalExtent returns the full extent of the stored 2D variable.
	GlobalExtent() tile.Extent

	// Type returns the element type of the stored cells.
	Type() tile.ElementType

	// NativeChunkExtent returns the physical chunk geometry of the
	// store, or false if the store is not chunked.
	NativeChunkExtent() (tile.Extent, bool)

	// ReadChunk reads the native chunk with the given chunk indices.
	// The result always has the full nominal chunk extent; chunks
	// overlapping the lower or right data boundary are padded with
	// undefined ghost cells beyond the data.
	ReadChunk(chunkRow, chunkCol int) (tile.Buffer, error)

	// ReadRect reads the rectangle of the given extent starting at the
	// given global coordinates, in row-major order.
	ReadRect(row, col int, extent tile.Extent) (tile.Buffer, error)
}

// WritableStore is a store accepting rectangular writes.
type WritableStore interface {
	Store

	// WriteRect writes the given row-major cell data as the rectangle
	// of the given extent starting at the given global coordinates.
	WriteRect(row, col int, extent tile.Extent, data tile.Buffer) error
}
