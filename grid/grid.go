// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package grid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/spatialio/tilegrid/common"
	"github.com/spatialio/tilegrid/common/interrupt"
	"github.com/spatialio/tilegrid/tile"
	"github.com/spatialio/tilegrid/tile/cache"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ErrReadOnly is reported when writing to a grid whose source does not
// support write-back.
const ErrReadOnly = common.ConstError("grid is read-only")

// Grid is a logical 2D grid of numeric cells backed by a tile source.
// Reads are served from an attached tile cache, falling back to the
// source on a miss. Writes are buffered in memory as dirty tiles and
// deferred until Flush.
//
// Dirty tiles are held by the grid itself rather than the shared cache,
// so cache eviction can never drop unflushed data. A dirty tile returns
// to the shared cache once it has been written back.
//
// A grid is safe for concurrent use. Closing a grid flushes all dirty
// tiles first; see Close.
type Grid struct {
	mu     sync.Mutex
	source tile.Source
	writer tile.Writer // nil for read-only sources
	scheme *tile.TilingScheme
	cache  cache.Cache
	dirty  map[tile.Position]*tile.Tile

	// last is the most recently accessed tile, a fast path for the
	// common pattern of many consecutive accesses to the same tile.
	last *tile.Tile

	// progress of the current or last completed flush, 0 to 100.
	progress atomic.Int32

	ownsSource bool
	closed     bool
}

// New creates a grid over the given source using the given shared cache.
// The source remains owned by the caller; closing the grid does not
// close it.
func New(source tile.Source, c cache.Cache) *Grid {
	writer, _ := source.(tile.Writer)
	return &Grid{
		source: source,
		writer: writer,
		scheme: source.Scheme(),
		cache:  c,
		dirty:  map[tile.Position]*tile.Tile{},
	}
}

// NewOwning creates a grid over the given source like New, but the grid
// takes ownership: if the source implements io.Closer it is closed when
// the grid is closed.
func NewOwning(source tile.Source, c cache.Cache) *Grid {
	g := New(source, c)
	g.ownsSource = true
	return g
}

// Scheme returns the tiling scheme of the underlying source.
func (g *Grid) Scheme() *tile.TilingScheme {
	return g.scheme
}

// Type returns the element type of the grid's cells.
func (g *Grid) Type() tile.ElementType {
	return g.source.Type()
}

// GetValue returns the cell value at the given global coordinates.
func (g *Grid) GetValue(row, col int) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return 0, common.ErrClosed
	}
	pos, localRow, localCol, err := g.scheme.PositionForCoords(row, col)
	if err != nil {
		return 0, err
	}
	t, err := g.getTile(pos)
	if err != nil {
		return 0, err
	}
	return t.Get(localRow, localCol), nil
}

// SetValue updates the cell value at the given global coordinates. The
// change is buffered in memory until the next Flush.
func (g *Grid) SetValue(row, col int, value float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return common.ErrClosed
	}
	if g.writer == nil {
		return ErrReadOnly
	}
	pos, localRow, localCol, err := g.scheme.PositionForCoords(row, col)
	if err != nil {
		return err
	}
	t, err := g.getDirtyTile(pos)
	if err != nil {
		return err
	}
	t.Set(localRow, localCol, value)
	return nil
}

// GetRegion reads the rectangle of the given extent starting at the
// given global coordinates into one contiguous row-major buffer.
func (g *Grid) GetRegion(startRow, startCol int, extent tile.Extent) (tile.Buffer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return tile.Buffer{}, common.ErrClosed
	}
	positions, err := g.scheme.CoveringPositions(startRow, startCol, extent)
	if err != nil {
		return tile.Buffer{}, err
	}
	res := tile.NewBuffer(g.source.Type(), extent.Cells())
	for _, pos := range positions {
		t, err := g.getTile(pos)
		if err != nil {
			return tile.Buffer{}, err
		}
		g.copyIntersection(res, startRow, startCol, extent, t, false)
	}
	return res, nil
}

// SetRegion writes the given row-major cell data as the rectangle of
// the given extent starting at the given global coordinates. The
// changes are buffered in memory until the next Flush.
func (g *Grid) SetRegion(startRow, startCol int, extent tile.Extent, data tile.Buffer) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return common.ErrClosed
	}
	if g.writer == nil {
		return ErrReadOnly
	}
	if data.Len() != extent.Cells() {
		return fmt.Errorf("data length %d does not match region extent %v", data.Len(), extent)
	}
	if data.Type() != g.source.Type() {
		return fmt.Errorf("data type %v does not match grid type %v", data.Type(), g.source.Type())
	}
	positions, err := g.scheme.CoveringPositions(startRow, startCol, extent)
	if err != nil {
		return err
	}
	for _, pos := range positions {
		t, err := g.getDirtyTile(pos)
		if err != nil {
			return err
		}
		g.copyIntersection(data, startRow, startCol, extent, t, true)
	}
	return nil
}

// Prefetch loads the tiles covering the rectangle of the given extent
// into the shared cache using a pool of concurrent readers. It is a
// performance hint; already cached and dirty tiles are skipped.
func (g *Grid) Prefetch(ctx context.Context, startRow, startCol int, extent tile.Extent) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return common.ErrClosed
	}
	positions, err := g.scheme.CoveringPositions(startRow, startCol, extent)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	missing := make([]tile.Position, 0, len(positions))
	for _, pos := range positions {
		if _, isDirty := g.dirty[pos]; isDirty {
			continue
		}
		if _, found := g.cache.Get(cache.Key{Source: g.source, Pos: pos}); !found {
			missing = append(missing, pos)
		}
	}
	g.mu.Unlock()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(4)
	for _, pos := range missing {
		pos := pos
		group.Go(func() error {
			if interrupt.IsCancelled(ctx) {
				return interrupt.ErrCanceled
			}
			t, err := g.source.ReadTile(pos)
			if err != nil {
				return err
			}
			g.mu.Lock()
			defer g.mu.Unlock()
			// A write may have made the tile dirty in the meantime;
			// the stale read must not shadow it in the cache.
			if _, isDirty := g.dirty[pos]; !isDirty {
				g.cache.Put(cache.Key{Source: g.source, Pos: pos}, t)
			}
			return nil
		})
	}
	return group.Wait()
}

// Flush writes all dirty tiles back to the source in row-major tile
// order. Tiles written successfully become clean even if a later tile
// fails; the failed and all remaining tiles stay dirty so the flush can
// be retried. Flushing a clean grid performs no I/O.
func (g *Grid) Flush() error {
	return g.FlushContext(context.Background())
}

// FlushContext is Flush honoring context cancellation between tiles. A
// cancelled flush leaves the remaining tiles dirty.
func (g *Grid) FlushContext(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return common.ErrClosed
	}
	return g.flush(ctx)
}

// FlushProgress returns the progress of the current or last completed
// flush in percent. It can be polled concurrently to a running flush.
func (g *Grid) FlushProgress() int {
	return int(g.progress.Load())
}

// Close flushes all dirty tiles, drops the grid's entries from the
// shared cache, and, for owning grids, closes the source. Further
// operations on the grid fail. Closing a closed grid is a no-op.
func (g *Grid) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	err := g.flush(context.Background())
	g.closed = true
	g.last = nil
	g.cache.RemoveSource(g.source)
	if g.ownsSource {
		if closer, ok := g.source.(io.Closer); ok {
			err = errors.Join(err, closer.Close())
		}
	}
	return err
}

// GetMemoryFootprint provides the size of the grid in memory in bytes,
// excluding the shared cache.
func (g *Grid) GetMemoryFootprint() *common.MemoryFootprint {
	g.mu.Lock()
	defer g.mu.Unlock()
	size := unsafe.Sizeof(*g)
	for _, t := range g.dirty {
		size += unsafe.Sizeof(*t) + uintptr(t.SizeInBytes())
	}
	return common.NewMemoryFootprint(size)
}

// getTile resolves the tile at the given position, consulting dirty
// tiles first, then the shared cache, then the source. The caller must
// hold the lock.
func (g *Grid) getTile(pos tile.Position) (*tile.Tile, error) {
	if g.last != nil && g.last.Position() == pos {
		return g.last, nil
	}
	if t, isDirty := g.dirty[pos]; isDirty {
		g.last = t
		return t, nil
	}
	key := cache.Key{Source: g.source, Pos: pos}
	if t, found := g.cache.Get(key); found {
		g.last = t
		return t, nil
	}
	t, err := g.source.ReadTile(pos)
	if err != nil {
		return nil, err
	}
	g.cache.Put(key, t)
	g.last = t
	return t, nil
}

// getDirtyTile resolves the tile at the given position as a private
// dirty tile owned by this grid, cloning and unsharing a clean tile on
// first write. The caller must hold the lock.
func (g *Grid) getDirtyTile(pos tile.Position) (*tile.Tile, error) {
	if t, isDirty := g.dirty[pos]; isDirty {
		g.last = t
		return t, nil
	}
	t, err := g.getTile(pos)
	if err != nil {
		return nil, err
	}
	// The shared cache may serve the clean tile to other grids; the
	// private copy must leave the cache so it cannot be evicted.
	g.cache.Remove(cache.Key{Source: g.source, Pos: pos})
	clone := t.Clone()
	g.dirty[pos] = clone
	g.last = clone
	return clone, nil
}

// flush writes all dirty tiles back in row-major tile order; the caller
// must hold the lock.
func (g *Grid) flush(ctx context.Context) error {
	if g.writer == nil || len(g.dirty) == 0 {
		g.progress.Store(100)
		return nil
	}
	positions := maps.Keys(g.dirty)
	slices.SortFunc(positions, func(a, b tile.Position) bool {
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	g.progress.Store(0)
	for i, pos := range positions {
		if interrupt.IsCancelled(ctx) {
			return interrupt.ErrCanceled
		}
		t := g.dirty[pos]
		if err := g.writer.WriteTile(pos, t.Data()); err != nil {
			return err
		}
		delete(g.dirty, pos)
		g.cache.Put(cache.Key{Source: g.source, Pos: pos}, t)
		g.progress.Store(int32((i + 1) * 100 / len(positions)))
	}
	return nil
}

// copyIntersection copies the overlap of the given region and the given
// tile between the region buffer and the tile payload, row by row. With
// toTile set the region is the source and the tile the destination,
// otherwise the reverse.
func (g *Grid) copyIntersection(region tile.Buffer, startRow, startCol int, extent tile.Extent, t *tile.Tile, toTile bool) {
	tileStartRow, tileStartCol := g.scheme.GlobalStart(t.Position())
	tileExtent := t.Extent()

	firstRow := max(startRow, tileStartRow)
	lastRow := min(startRow+extent.Rows, tileStartRow+tileExtent.Rows)
	firstCol := max(startCol, tileStartCol)
	lastCol := min(startCol+extent.Cols, tileStartCol+tileExtent.Cols)

	for row := firstRow; row < lastRow; row++ {
		regionOffset := (row-startRow)*extent.Cols + (firstCol - startCol)
		tileOffset := (row-tileStartRow)*tileExtent.Cols + (firstCol - tileStartCol)
		if toTile {
			t.Data().Copy(tileOffset, region, regionOffset, lastCol-firstCol)
		} else {
			region.Copy(regionOffset, t.Data(), tileOffset, lastCol-firstCol)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
