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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spatialio/tilegrid/common"
	"github.com/spatialio/tilegrid/common/interrupt"
	"github.com/spatialio/tilegrid/source/memory"
	"github.com/spatialio/tilegrid/tile"
	"github.com/spatialio/tilegrid/tile/cache"
)

var _ common.FlushAndCloser = &Grid{}
var _ common.MemoryFootprintProvider = &Grid{}

var (
	testGlobal = tile.Extent{Rows: 100, Cols: 200}
	testTile   = tile.Extent{Rows: 40, Cols: 40}
)

func testScheme(t *testing.T) *tile.TilingScheme {
	t.Helper()
	scheme, err := tile.NewTilingScheme(testGlobal, testTile)
	if err != nil {
		t.Fatalf("failed to create scheme: %v", err)
	}
	return scheme
}

// makeTile builds a float64 tile whose cells all hold the given value.
func makeTile(t *testing.T, scheme *tile.TilingScheme, pos tile.Position, value float64) *tile.Tile {
	t.Helper()
	extent := scheme.ActualExtent(pos)
	data := tile.NewBuffer(tile.Float64, extent.Cells())
	for i := 0; i < data.Len(); i++ {
		data.Set(i, value)
	}
	res, err := tile.New(pos, extent, data)
	if err != nil {
		t.Fatalf("failed to create tile: %v", err)
	}
	return res
}

// memorySource creates a writable in-memory source where each cell
// holds its row-major global index.
func memorySource(t *testing.T) tile.Source {
	t.Helper()
	source, err := memory.NewSource(testGlobal, testTile, tile.Float64)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}
	grid := New(source, cache.NewDefaultLruCache())
	data := tile.NewBuffer(tile.Float64, testGlobal.Cells())
	for i := 0; i < data.Len(); i++ {
		data.Set(i, float64(i))
	}
	if err := grid.SetRegion(0, 0, testGlobal, data); err != nil {
		t.Fatalf("failed to initialize source: %v", err)
	}
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close staging grid: %v", err)
	}
	return source
}

func TestGrid_GetValueReadsThroughTheCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheme := testScheme(t)
	source := tile.NewMockSource(ctrl)
	source.EXPECT().Scheme().Return(scheme).AnyTimes()
	source.EXPECT().Type().Return(tile.Float64).AnyTimes()
	pos := tile.Position{Row: 1, Col: 2}
	source.EXPECT().ReadTile(pos).Return(makeTile(t, scheme, pos, 7), nil)

	shared := cache.NewDefaultLruCache()
	grid := New(source, shared)

	// Both accesses fall into tile (1,2); the source is read once.
	for i := 0; i < 2; i++ {
		got, err := grid.GetValue(50, 90)
		if err != nil {
			t.Fatalf("failed to read value: %v", err)
		}
		if got != 7 {
			t.Errorf("wrong value: got %v, want 7", got)
		}
	}
	if _, found := shared.Get(cache.Key{Source: source, Pos: pos}); !found {
		t.Errorf("the read tile should be in the shared cache")
	}
}

func TestGrid_ValuesAreAddressedCorrectly(t *testing.T) {
	source := memorySource(t)
	grid := New(source, cache.NewDefaultLruCache())
	defer grid.Close()

	for _, coords := range [][2]int{{0, 0}, {39, 39}, {40, 40}, {99, 199}, {50, 170}} {
		want := float64(coords[0]*testGlobal.Cols + coords[1])
		got, err := grid.GetValue(coords[0], coords[1])
		if err != nil {
			t.Fatalf("failed to read (%d,%d): %v", coords[0], coords[1], err)
		}
		if got != want {
			t.Errorf("wrong value at (%d,%d): got %v, want %v", coords[0], coords[1], got, want)
		}
	}
}

func TestGrid_AccessOutsideTheGridFails(t *testing.T) {
	grid := New(memorySource(t), cache.NewDefaultLruCache())
	defer grid.Close()

	if _, err := grid.GetValue(100, 0); !errors.Is(err, tile.ErrOutOfRange) {
		t.Errorf("reading outside the grid should fail, got %v", err)
	}
	if err := grid.SetValue(0, 200, 1); !errors.Is(err, tile.ErrOutOfRange) {
		t.Errorf("writing outside the grid should fail, got %v", err)
	}
	if _, err := grid.GetRegion(90, 0, tile.Extent{Rows: 20, Cols: 10}); !errors.Is(err, tile.ErrOutOfRange) {
		t.Errorf("reading a region crossing the boundary should fail, got %v", err)
	}
}

func TestGrid_WritingReadOnlySourceFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheme := testScheme(t)
	source := tile.NewMockSource(ctrl) // implements no write path
	source.EXPECT().Scheme().Return(scheme).AnyTimes()
	source.EXPECT().Type().Return(tile.Float64).AnyTimes()

	grid := New(source, cache.NewDefaultLruCache())
	if err := grid.SetValue(0, 0, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("writing a read-only grid should fail, got %v", err)
	}
	if err := grid.SetRegion(0, 0, tile.Extent{Rows: 1, Cols: 1}, tile.NewBuffer(tile.Float64, 1)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("writing a read-only grid should fail, got %v", err)
	}
}

func TestGrid_RegionsAreStitchedAcrossTiles(t *testing.T) {
	grid := New(memorySource(t), cache.NewDefaultLruCache())
	defer grid.Close()

	// The region spans tiles (0,0) through (1,2).
	extent := tile.Extent{Rows: 20, Cols: 60}
	region, err := grid.GetRegion(30, 30, extent)
	if err != nil {
		t.Fatalf("failed to read region: %v", err)
	}
	if got, want := region.Len(), extent.Cells(); got != want {
		t.Fatalf("wrong region length: got %d, want %d", got, want)
	}
	for r := 0; r < extent.Rows; r++ {
		for c := 0; c < extent.Cols; c++ {
			want := float64((30+r)*testGlobal.Cols + 30 + c)
			if got := region.Get(r*extent.Cols + c); got != want {
				t.Fatalf("wrong value at region cell (%d,%d): got %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestGrid_SetRegionSpansTiles(t *testing.T) {
	source := memorySource(t)
	grid := New(source, cache.NewDefaultLruCache())

	extent := tile.Extent{Rows: 25, Cols: 50}
	data := tile.NewBuffer(tile.Float64, extent.Cells())
	for i := 0; i < data.Len(); i++ {
		data.Set(i, float64(-i - 1))
	}
	if err := grid.SetRegion(20, 150, extent, data); err != nil {
		t.Fatalf("failed to write region: %v", err)
	}
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}

	// A fresh grid over the same source sees the flushed data.
	verify := New(source, cache.NewDefaultLruCache())
	defer verify.Close()
	region, err := verify.GetRegion(20, 150, extent)
	if err != nil {
		t.Fatalf("failed to read region back: %v", err)
	}
	if !region.Equal(data) {
		t.Errorf("read-back region differs from written data")
	}
	// A neighboring cell is untouched.
	if got, want := mustGet(t, verify, 20, 149), float64(20*testGlobal.Cols+149); got != want {
		t.Errorf("cell next to the region changed: got %v, want %v", got, want)
	}
}

func TestGrid_SetRegionChecksItsInput(t *testing.T) {
	grid := New(memorySource(t), cache.NewDefaultLruCache())
	defer grid.Close()

	extent := tile.Extent{Rows: 2, Cols: 2}
	if err := grid.SetRegion(0, 0, extent, tile.NewBuffer(tile.Float64, 3)); err == nil {
		t.Errorf("length mismatch should be rejected")
	}
	if err := grid.SetRegion(0, 0, extent, tile.NewBuffer(tile.Int32, 4)); err == nil {
		t.Errorf("element type mismatch should be rejected")
	}
}

func TestGrid_DirtyTilesSurviveCacheEviction(t *testing.T) {
	source := memorySource(t)
	// A cache this small keeps at most one clean tile.
	shared := cache.NewLruCache(testTile.Cells() * 8)
	grid := New(source, shared)
	defer grid.Close()

	if err := grid.SetValue(0, 0, 42); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}
	// Thrash the cache with reads from all other tiles.
	counts := grid.Scheme().TileCounts()
	for i := 0; i < counts.Rows; i++ {
		for j := 0; j < counts.Cols; j++ {
			row, col := grid.Scheme().GlobalStart(tile.Position{Row: i, Col: j})
			if _, err := grid.GetValue(row, col); err != nil {
				t.Fatalf("failed to read tile (%d,%d): %v", i, j, err)
			}
		}
	}
	if got, err := grid.GetValue(0, 0); err != nil || got != 42 {
		t.Errorf("unflushed write was lost: got %v, %v", got, err)
	}
}

func TestGrid_DirtyTilesLeaveTheSharedCache(t *testing.T) {
	source := memorySource(t)
	shared := cache.NewDefaultLruCache()
	grid := New(source, shared)
	defer grid.Close()

	pos := tile.Position{Row: 0, Col: 0}
	if _, err := grid.GetValue(0, 0); err != nil {
		t.Fatalf("failed to read value: %v", err)
	}
	if _, found := shared.Get(cache.Key{Source: source, Pos: pos}); !found {
		t.Fatalf("clean tile should be cached")
	}
	if err := grid.SetValue(0, 0, 1); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}
	if _, found := shared.Get(cache.Key{Source: source, Pos: pos}); found {
		t.Errorf("dirty tile must not stay in the shared cache")
	}
}

func TestGrid_WritesAreInvisibleToOtherGridsUntilFlush(t *testing.T) {
	source := memorySource(t)
	shared := cache.NewDefaultLruCache()
	writer := New(source, shared)
	reader := New(source, shared)
	defer reader.Close()

	if err := writer.SetValue(0, 0, 42); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}
	if got := mustGet(t, reader, 0, 0); got != 0 {
		t.Errorf("unflushed write visible to another grid: got %v", got)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	// The reader's cached tile predates the flush; a fresh grid sees it.
	fresh := New(source, cache.NewDefaultLruCache())
	defer fresh.Close()
	if got := mustGet(t, fresh, 0, 0); got != 42 {
		t.Errorf("flushed write not visible: got %v", got)
	}
}

func TestGrid_FlushWritesTilesInRowMajorOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheme := testScheme(t)
	source := tile.NewMockSourceWriter(ctrl)
	source.EXPECT().Scheme().Return(scheme).AnyTimes()
	source.EXPECT().Type().Return(tile.Float64).AnyTimes()
	source.EXPECT().ReadTile(gomock.Any()).DoAndReturn(func(pos tile.Position) (*tile.Tile, error) {
		return makeTile(t, scheme, pos, 0), nil
	}).AnyTimes()

	grid := New(source, cache.NewDefaultLruCache())

	// Dirty three tiles in non-row-major order.
	for _, coords := range [][2]int{{80, 160}, {0, 0}, {0, 80}} {
		if err := grid.SetValue(coords[0], coords[1], 1); err != nil {
			t.Fatalf("failed to write value: %v", err)
		}
	}
	gomock.InOrder(
		source.EXPECT().WriteTile(tile.Position{Row: 0, Col: 0}, gomock.Any()).Return(nil),
		source.EXPECT().WriteTile(tile.Position{Row: 0, Col: 2}, gomock.Any()).Return(nil),
		source.EXPECT().WriteTile(tile.Position{Row: 2, Col: 4}, gomock.Any()).Return(nil),
	)
	if err := grid.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if got, want := grid.FlushProgress(), 100; got != want {
		t.Errorf("wrong flush progress: got %d, want %d", got, want)
	}

	// A second flush with no new writes performs no I/O; any WriteTile
	// call would fail the controller's expectations.
	if err := grid.Flush(); err != nil {
		t.Fatalf("repeated flush failed: %v", err)
	}
}

func TestGrid_FailedFlushCanBeResumed(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheme := testScheme(t)
	source := tile.NewMockSourceWriter(ctrl)
	source.EXPECT().Scheme().Return(scheme).AnyTimes()
	source.EXPECT().Type().Return(tile.Float64).AnyTimes()
	source.EXPECT().ReadTile(gomock.Any()).DoAndReturn(func(pos tile.Position) (*tile.Tile, error) {
		return makeTile(t, scheme, pos, 0), nil
	}).AnyTimes()

	grid := New(source, cache.NewDefaultLruCache())
	for _, coords := range [][2]int{{0, 0}, {0, 80}, {80, 160}} {
		if err := grid.SetValue(coords[0], coords[1], 1); err != nil {
			t.Fatalf("failed to write value: %v", err)
		}
	}

	injected := fmt.Errorf("injected error")
	gomock.InOrder(
		source.EXPECT().WriteTile(tile.Position{Row: 0, Col: 0}, gomock.Any()).Return(nil),
		source.EXPECT().WriteTile(tile.Position{Row: 0, Col: 2}, gomock.Any()).Return(injected),
	)
	if err := grid.Flush(); !errors.Is(err, injected) {
		t.Fatalf("flush should report the write failure, got %v", err)
	}

	// The failed tile and its successor are still dirty; a retry writes
	// exactly those two.
	gomock.InOrder(
		source.EXPECT().WriteTile(tile.Position{Row: 0, Col: 2}, gomock.Any()).Return(nil),
		source.EXPECT().WriteTile(tile.Position{Row: 2, Col: 4}, gomock.Any()).Return(nil),
	)
	if err := grid.Flush(); err != nil {
		t.Fatalf("retried flush failed: %v", err)
	}
}

func TestGrid_FlushCanBeInterrupted(t *testing.T) {
	source := memorySource(t)
	grid := New(source, cache.NewDefaultLruCache())

	if err := grid.SetValue(0, 0, 1); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := grid.FlushContext(ctx); !errors.Is(err, interrupt.ErrCanceled) {
		t.Fatalf("cancelled flush should fail, got %v", err)
	}
	// The write is still pending and a regular flush completes it.
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}
	verify := New(source, cache.NewDefaultLruCache())
	defer verify.Close()
	if got := mustGet(t, verify, 0, 0); got != 1 {
		t.Errorf("interrupted write was lost: got %v", got)
	}
}

func TestGrid_CloseFlushesPendingWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheme := testScheme(t)
	source := tile.NewMockSourceWriter(ctrl)
	source.EXPECT().Scheme().Return(scheme).AnyTimes()
	source.EXPECT().Type().Return(tile.Float64).AnyTimes()
	pos := tile.Position{Row: 0, Col: 0}
	source.EXPECT().ReadTile(pos).Return(makeTile(t, scheme, pos, 0), nil)
	source.EXPECT().WriteTile(pos, gomock.Any()).Return(nil)

	grid := New(source, cache.NewDefaultLruCache())
	if err := grid.SetValue(0, 0, 1); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}
}

func TestGrid_OperationsAfterCloseFail(t *testing.T) {
	grid := New(memorySource(t), cache.NewDefaultLruCache())
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}
	if err := grid.Close(); err != nil {
		t.Errorf("closing twice should be a no-op, got %v", err)
	}
	if _, err := grid.GetValue(0, 0); !errors.Is(err, common.ErrClosed) {
		t.Errorf("reading a closed grid should fail, got %v", err)
	}
	if err := grid.SetValue(0, 0, 1); !errors.Is(err, common.ErrClosed) {
		t.Errorf("writing a closed grid should fail, got %v", err)
	}
	if err := grid.Flush(); !errors.Is(err, common.ErrClosed) {
		t.Errorf("flushing a closed grid should fail, got %v", err)
	}
}

func TestGrid_CloseDropsCachedTiles(t *testing.T) {
	source := memorySource(t)
	shared := cache.NewDefaultLruCache()
	grid := New(source, shared)
	if _, err := grid.GetValue(0, 0); err != nil {
		t.Fatalf("failed to read value: %v", err)
	}
	if shared.Size() == 0 {
		t.Fatalf("cache should hold the read tile")
	}
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}
	if got := shared.Size(); got != 0 {
		t.Errorf("closing the grid should drop its cache entries, %d bytes remain", got)
	}
}

// closableSource wraps a source and records whether it was closed.
type closableSource struct {
	tile.Source
	closed bool
}

func (s *closableSource) Close() error {
	s.closed = true
	return nil
}

func TestGrid_OwningGridClosesItsSource(t *testing.T) {
	borrowed := &closableSource{Source: memorySource(t)}
	grid := New(borrowed, cache.NewDefaultLruCache())
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}
	if borrowed.closed {
		t.Errorf("a borrowing grid must not close its source")
	}

	owned := &closableSource{Source: memorySource(t)}
	grid = NewOwning(owned, cache.NewDefaultLruCache())
	if err := grid.Close(); err != nil {
		t.Fatalf("failed to close grid: %v", err)
	}
	if !owned.closed {
		t.Errorf("an owning grid should close its source")
	}
}

func TestGrid_PrefetchFillsTheCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheme := testScheme(t)
	source := tile.NewMockSource(ctrl)
	source.EXPECT().Scheme().Return(scheme).AnyTimes()
	source.EXPECT().Type().Return(tile.Float64).AnyTimes()
	// Each of the six covered tiles is read exactly once.
	source.EXPECT().ReadTile(gomock.Any()).DoAndReturn(func(pos tile.Position) (*tile.Tile, error) {
		return makeTile(t, scheme, pos, float64(pos.Row)), nil
	}).Times(6)

	grid := New(source, cache.NewDefaultLruCache())
	if err := grid.Prefetch(context.Background(), 30, 30, tile.Extent{Rows: 20, Cols: 60}); err != nil {
		t.Fatalf("prefetch failed: %v", err)
	}
	// Reads inside the prefetched region are served from the cache.
	if got := mustGet(t, grid, 45, 45); got != 1 {
		t.Errorf("wrong value after prefetch: got %v", got)
	}
}

func TestGrid_PrefetchHonorsCancellation(t *testing.T) {
	grid := New(memorySource(t), cache.NewDefaultLruCache())
	defer grid.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := grid.Prefetch(ctx, 0, 0, testGlobal); !errors.Is(err, interrupt.ErrCanceled) {
		t.Errorf("cancelled prefetch should fail, got %v", err)
	}
}

func TestGrid_ReportsMemoryFootprint(t *testing.T) {
	grid := New(memorySource(t), cache.NewDefaultLruCache())
	defer grid.Close()

	before := grid.GetMemoryFootprint().Total()
	if err := grid.SetValue(0, 0, 1); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}
	after := grid.GetMemoryFootprint().Total()
	if after <= before {
		t.Errorf("dirty tiles should grow the footprint: %d -> %d", before, after)
	}
}

func mustGet(t *testing.T, g *Grid, row, col int) float64 {
	t.Helper()
	got, err := g.GetValue(row, col)
	if err != nil {
		t.Fatalf("failed to read (%d,%d): %v", row, col, err)
	}
	return got
}
