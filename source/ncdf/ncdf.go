// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ncdf adapts 2D variables of NetCDF classic files to the tile
// source interface. The classic format stores variables contiguously in
// row-major order without internal chunking, so tiles are resolved by
// strided rectangular reads.
package ncdf

import (
	"fmt"
	"io"
	"os"

	"github.com/ctessum/cdf"
	"github.com/spatialio/tilegrid/tile"
	"github.com/spatialio/tilegrid/tile/chunk"
)

// Store exposes one 2D variable of an open NetCDF file as a chunk
// store. The classic format has no native chunking; all reads go
// through the rectangular path.
type Store struct {
	file     *cdf.File
	variable string
	global   tile.Extent
	typ      tile.ElementType
}

var _ chunk.WritableStore = &Store{}

// NewStore creates a store over the named variable of the given file.
// The variable must be a non-record 2D variable of a numeric type.
func NewStore(file *cdf.File, variable string) (*Store, error) {
	lengths := file.Header.Lengths(variable)
	if lengths == nil {
		return nil, fmt.Errorf("no variable %q in file", variable)
	}
	if len(lengths) != 2 {
		return nil, fmt.Errorf("variable %q has %d dimensions, need 2", variable, len(lengths))
	}
	if file.Header.IsRecordVariable(variable) {
		return nil, fmt.Errorf("variable %q is a record variable", variable)
	}
	typ, err := elementTypeOf(file.Header, variable)
	if err != nil {
		return nil, err
	}
	return &Store{
		file:     file,
		variable: variable,
		global:   tile.Extent{Rows: lengths[0], Cols: lengths[1]},
		typ:      typ,
	}, nil
}

func (s *Store) GlobalExtent() tile.Extent { return s.global }

func (s *Store) Type() tile.ElementType { return s.typ }

func (s *Store) NativeChunkExtent() (tile.Extent, bool) { return tile.Extent{}, false }

func (s *Store) ReadChunk(chunkRow, chunkCol int) (tile.Buffer, error) {
	return tile.Buffer{}, fmt.Errorf("NetCDF classic files are not chunked")
}

func (s *Store) ReadRect(row, col int, extent tile.Extent) (tile.Buffer, error) {
	res := tile.NewBuffer(s.typ, extent.Cells())

	// Full-width rectangles are contiguous in the file and can be read
	// in one pass; anything narrower is read row by row.
	if col == 0 && extent.Cols == s.global.Cols {
		r := s.file.Reader(s.variable, []int{row, 0}, []int{row + extent.Rows - 1, extent.Cols - 1})
		if _, err := r.Read(res.Data()); err != nil {
			return tile.Buffer{}, fmt.Errorf("reading %q: %w", s.variable, err)
		}
		return res, nil
	}
	for i := 0; i < extent.Rows; i++ {
		r := s.file.Reader(s.variable, []int{row + i, col}, []int{row + i, col + extent.Cols - 1})
		if _, err := r.Read(res.Slice(i*extent.Cols, extent.Cols)); err != nil {
			return tile.Buffer{}, fmt.Errorf("reading %q row %d: %w", s.variable, row+i, err)
		}
	}
	return res, nil
}

func (s *Store) WriteRect(row, col int, extent tile.Extent, data tile.Buffer) error {
	if data.Type() != s.typ {
		return fmt.Errorf("data type %v does not match variable type %v", data.Type(), s.typ)
	}
	if col == 0 && extent.Cols == s.global.Cols {
		w := s.file.Writer(s.variable, []int{row, 0}, []int{row + extent.Rows - 1, extent.Cols - 1})
		if err := writeAll(w, data.Data(), extent.Cells()); err != nil {
			return fmt.Errorf("writing %q: %w", s.variable, err)
		}
		return nil
	}
	for i := 0; i < extent.Rows; i++ {
		w := s.file.Writer(s.variable, []int{row + i, col}, []int{row + i, col + extent.Cols - 1})
		if err := writeAll(w, data.Slice(i*extent.Cols, extent.Cols), extent.Cols); err != nil {
			return fmt.Errorf("writing %q row %d: %w", s.variable, row+i, err)
		}
	}
	return nil
}

// writeAll pushes cells values through the given writer. The writer
// reports io.EOF when a write fills its bounded region exactly; a
// complete write is a success, not an error.
func writeAll(w cdf.Writer, values interface{}, cells int) error {
	n, err := w.Write(values)
	if err == io.EOF && n == cells {
		return nil
	}
	return err
}

// Source is a tile source over one variable of a NetCDF file opened
// from disk. Closing the source closes the file.
type Source struct {
	*chunk.Producer
	file *os.File
}

// Open opens the named variable of the NetCDF file at the given path
// for reading and writing, tiled with the default tile extent.
func Open(path, variable string) (*Source, error) {
	return OpenWithTileExtent(path, variable, tile.Extent{})
}

// OpenWithTileExtent is Open using the given tile extent. A zero extent
// selects the default.
func OpenWithTileExtent(path, variable string, tileExtent tile.Extent) (*Source, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	file, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	store, err := NewStore(file, variable)
	if err != nil {
		f.Close()
		return nil, err
	}
	var producer *chunk.Producer
	if tileExtent == (tile.Extent{}) {
		producer, err = chunk.NewProducer(store)
	} else {
		producer, err = chunk.NewProducerWithExtent(store, tileExtent)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Source{Producer: producer, file: f}, nil
}

// Create creates a NetCDF file at the given path holding a single
// zero-filled 2D variable of the given extent and element type, and
// opens it like Open.
func Create(path, variable string, global tile.Extent, typ tile.ElementType) (*Source, error) {
	if !global.IsValid() {
		return nil, fmt.Errorf("invalid variable extent %v", global)
	}
	sample, err := sampleValue(typ)
	if err != nil {
		return nil, err
	}
	rowDim := variable + "_row"
	colDim := variable + "_col"
	h := cdf.NewHeader([]string{rowDim, colDim}, []int{global.Rows, global.Cols})
	h.AddVariable(variable, []string{rowDim, colDim}, sample)
	h.Define()
	for _, err := range h.Check() {
		return nil, fmt.Errorf("invalid NetCDF header: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	file, err := cdf.Create(f, h)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	if err := zeroFill(file, variable, global, typ); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return Open(path, variable)
}

// zeroFill writes zeros to the whole variable, one band of rows at a
// time so large variables do not need a full-size buffer.
func zeroFill(file *cdf.File, variable string, global tile.Extent, typ tile.ElementType) error {
	const bandRows = 256
	for row := 0; row < global.Rows; row += bandRows {
		rows := bandRows
		if row+rows > global.Rows {
			rows = global.Rows - row
		}
		w := file.Writer(variable, []int{row, 0}, []int{row + rows - 1, global.Cols - 1})
		zeros := tile.NewBuffer(typ, rows*global.Cols)
		if err := writeAll(w, zeros.Data(), zeros.Len()); err != nil {
			return fmt.Errorf("initializing %q: %w", variable, err)
		}
	}
	return nil
}

// Close closes the underlying file. The source must not be used
// afterwards.
func (s *Source) Close() error {
	return s.file.Close()
}

// elementTypeOf maps the NetCDF type of the given variable to an
// element type. The classic format has no 64-bit integer type.
func elementTypeOf(h *cdf.Header, variable string) (tile.ElementType, error) {
	switch h.ZeroValue(variable, 0).(type) {
	case []uint8:
		return tile.Uint8, nil
	case []int16:
		return tile.Int16, nil
	case []int32:
		return tile.Int32, nil
	case []float32:
		return tile.Float32, nil
	case []float64:
		return tile.Float64, nil
	}
	return 0, fmt.Errorf("variable %q has an unsupported data type", variable)
}

func sampleValue(typ tile.ElementType) (interface{}, error) {
	switch typ {
	case tile.Uint8:
		return []uint8{0}, nil
	case tile.Int16:
		return []int16{0}, nil
	case tile.Int32:
		return []int32{0}, nil
	case tile.Float32:
		return []float32{0}, nil
	case tile.Float64:
		return []float64{0}, nil
	}
	return nil, fmt.Errorf("element type %v cannot be stored in a NetCDF classic file", typ)
}
