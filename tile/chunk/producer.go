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
	"fmt"

	"github.com/spatialio/tilegrid/common"
	"github.com/spatialio/tilegrid/tile"
)

// DefaultTileExtent is the nominal tile extent used for stores without
// native chunking, clamped to the global extent of small stores.
var DefaultTileExtent = tile.Extent{Rows: 512, Cols: 512}

// ErrReadOnly is reported when writing a tile through a producer whose
// store does not accept writes.
const ErrReadOnly = common.ConstError("store is read-only")

// Producer adapts a Store to the tile Source interface. Its tiling
// scheme follows the store's native chunk geometry when the store has
// one, so that every tile read is served by a single chunk read with
// ghost cells beyond the data boundary trimmed off. For unchunked
// stores it falls back to strided rectangular reads covering exactly
// the tile's data.
type Producer struct {
	store  Store
	writer WritableStore // nil for read-only stores
	scheme *tile.TilingScheme
	native bool // tile boundaries match the store's chunk boundaries
}

var _ tile.SourceWriter = &Producer{}

// NewProducer creates a producer over the given store. The tile extent
// is the store's native chunk extent if it has one, and a default
// extent clamped to the store's global extent otherwise.
func NewProducer(store Store) (*Producer, error) {
	extent, ok := store.NativeChunkExtent()
	if !ok {
		extent = DefaultTileExtent
		global := store.GlobalExtent()
		if extent.Rows > global.Rows {
			extent.Rows = global.Rows
		}
		if extent.Cols > global.Cols {
			extent.Cols = global.Cols
		}
	}
	return NewProducerWithExtent(store, extent)
}

// NewProducerWithExtent creates a producer over the given store using
// the given tile extent. The fast single-chunk read path is only used
// if the extent matches the store's native chunk extent.
func NewProducerWithExtent(store Store, extent tile.Extent) (*Producer, error) {
	scheme, err := tile.NewTilingScheme(store.GlobalExtent(), extent)
	if err != nil {
		return nil, fmt.Errorf("cannot tile store: %w", err)
	}
	native := false
	if chunkExtent, ok := store.NativeChunkExtent(); ok && chunkExtent == extent {
		native = true
	}
	writer, _ := store.(WritableStore)
	return &Producer{
		store:  store,
		writer: writer,
		scheme: scheme,
		native: native,
	}, nil
}

func (p *Producer) Scheme() *tile.TilingScheme {
	return p.scheme
}

func (p *Producer) Type() tile.ElementType {
	return p.store.Type()
}

// IsNativeRead returns true if tiles are served by single native chunk
// reads rather than strided rectangular reads.
func (p *Producer) IsNativeRead() bool {
	return p.native
}

func (p *Producer) ReadTile(pos tile.Position) (*tile.Tile, error) {
	if _, err := p.scheme.PositionForIndex(pos.Row, pos.Col); err != nil {
		return nil, &tile.ReadError{Pos: pos, Cause: err}
	}
	var data tile.Buffer
	var err error
	if p.native {
		data, err = p.readNative(pos)
	} else {
		row, col := p.scheme.GlobalStart(pos)
		data, err = p.store.ReadRect(row, col, p.scheme.ActualExtent(pos))
	}
	if err != nil {
		return nil, &tile.ReadError{Pos: pos, Cause: err}
	}
	res, err := tile.New(pos, p.scheme.ActualExtent(pos), data)
	if err != nil {
		return nil, &tile.ReadError{Pos: pos, Cause: err}
	}
	return res, nil
}

// readNative reads the chunk covering the given tile and trims the
// ghost rows and columns of boundary chunks.
func (p *Producer) readNative(pos tile.Position) (tile.Buffer, error) {
	raw, err := p.store.ReadChunk(pos.Row, pos.Col)
	if err != nil {
		return tile.Buffer{}, err
	}
	nominal := p.scheme.TileExtent()
	if raw.Len() != nominal.Cells() {
		return tile.Buffer{}, fmt.Errorf("chunk (%d,%d) has %d cells, expected %d", pos.Row, pos.Col, raw.Len(), nominal.Cells())
	}
	actual := p.scheme.ActualExtent(pos)
	if actual == nominal {
		return raw, nil
	}
	trimmed := tile.NewBuffer(raw.Type(), actual.Cells())
	for r := 0; r < actual.Rows; r++ {
		trimmed.Copy(r*actual.Cols, raw, r*nominal.Cols, actual.Cols)
	}
	return trimmed, nil
}

func (p *Producer) WriteTile(pos tile.Position, data tile.Buffer) error {
	if p.writer == nil {
		return &tile.WriteError{Pos: pos, Cause: ErrReadOnly}
	}
	if _, err := p.scheme.PositionForIndex(pos.Row, pos.Col); err != nil {
		return &tile.WriteError{Pos: pos, Cause: err}
	}
	extent := p.scheme.ActualExtent(pos)
	if data.Len() != extent.Cells() {
		return &tile.WriteError{Pos: pos, Cause: fmt.Errorf("payload has %d cells, expected %d", data.Len(), extent.Cells())}
	}
	row, col := p.scheme.GlobalStart(pos)
	if err := p.writer.WriteRect(row, col, extent, data); err != nil {
		return &tile.WriteError{Pos: pos, Cause: err}
	}
	return nil
}
