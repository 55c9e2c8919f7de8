// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package ldbstore persists tiled 2D variables in a LevelDB database,
// one compressed chunk per key. Unlike flat formats the layout is
// natively chunked, so tile reads are served by single chunk lookups.
package ldbstore

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/spatialio/tilegrid/tile"
	"github.com/spatialio/tilegrid/tile/chunk"
	"github.com/syndtr/goleveldb/leveldb"
)

// Store keeps one 2D variable in a LevelDB database shared with any
// number of other variables. Every chunk is stored under its own key,
// padded to the nominal chunk extent and s2-compressed. Chunks that
// were never written are absent from the database and read as zeros.
type Store struct {
	db       *leveldb.DB
	variable string
	global   tile.Extent
	chunk    tile.Extent
	typ      tile.ElementType
}

var _ chunk.WritableStore = &Store{}

const (
	metaKeyTag  = 'm'
	chunkKeyTag = 'c'
)

// Create registers a new variable of the given extent, chunk geometry,
// and element type in the database. It fails if the variable exists.
func Create(db *leveldb.DB, variable string, global, chunkExtent tile.Extent, typ tile.ElementType) (*Store, error) {
	if !global.IsValid() {
		return nil, fmt.Errorf("invalid variable extent %v", global)
	}
	if !chunkExtent.IsValid() {
		return nil, fmt.Errorf("invalid chunk extent %v", chunkExtent)
	}
	key := metaKey(variable)
	if _, err := db.Get(key, nil); err == nil {
		return nil, fmt.Errorf("variable %q already exists", variable)
	} else if err != leveldb.ErrNotFound {
		return nil, err
	}
	s := &Store{db: db, variable: variable, global: global, chunk: chunkExtent, typ: typ}
	if err := db.Put(key, s.encodeMeta(), nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Open opens an existing variable of the database.
func Open(db *leveldb.DB, variable string) (*Store, error) {
	raw, err := db.Get(metaKey(variable), nil)
	if err == leveldb.ErrNotFound {
		return nil, fmt.Errorf("no variable %q in database", variable)
	}
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, variable: variable}
	if err := s.decodeMeta(raw); err != nil {
		return nil, fmt.Errorf("corrupted metadata of variable %q: %w", variable, err)
	}
	return s, nil
}

func (s *Store) GlobalExtent() tile.Extent { return s.global }

func (s *Store) Type() tile.ElementType { return s.typ }

func (s *Store) NativeChunkExtent() (tile.Extent, bool) { return s.chunk, true }

func (s *Store) ReadChunk(chunkRow, chunkCol int) (tile.Buffer, error) {
	if err := s.checkChunk(chunkRow, chunkCol); err != nil {
		return tile.Buffer{}, err
	}
	raw, err := s.db.Get(s.chunkKey(chunkRow, chunkCol), nil)
	if err == leveldb.ErrNotFound {
		return tile.NewBuffer(s.typ, s.chunk.Cells()), nil
	}
	if err != nil {
		return tile.Buffer{}, err
	}
	decoded, err := s2.Decode(nil, raw)
	if err != nil {
		return tile.Buffer{}, fmt.Errorf("corrupted chunk (%d,%d): %w", chunkRow, chunkCol, err)
	}
	res, err := tile.DecodeBuffer(s.typ, decoded)
	if err != nil {
		return tile.Buffer{}, fmt.Errorf("corrupted chunk (%d,%d): %w", chunkRow, chunkCol, err)
	}
	if res.Len() != s.chunk.Cells() {
		return tile.Buffer{}, fmt.Errorf("chunk (%d,%d) has %d cells, expected %d", chunkRow, chunkCol, res.Len(), s.chunk.Cells())
	}
	return res, nil
}

func (s *Store) writeChunk(chunkRow, chunkCol int, data tile.Buffer) error {
	encoded := data.Encode(nil)
	return s.db.Put(s.chunkKey(chunkRow, chunkCol), s2.Encode(nil, encoded), nil)
}

func (s *Store) ReadRect(row, col int, extent tile.Extent) (tile.Buffer, error) {
	if err := s.checkRect(row, col, extent); err != nil {
		return tile.Buffer{}, err
	}
	res := tile.NewBuffer(s.typ, extent.Cells())
	err := s.forEachChunk(row, col, extent, func(chunkRow, chunkCol int) error {
		data, err := s.ReadChunk(chunkRow, chunkCol)
		if err != nil {
			return err
		}
		s.copyIntersection(res, row, col, extent, data, chunkRow, chunkCol, false)
		return nil
	})
	if err != nil {
		return tile.Buffer{}, err
	}
	return res, nil
}

func (s *Store) WriteRect(row, col int, extent tile.Extent, data tile.Buffer) error {
	if err := s.checkRect(row, col, extent); err != nil {
		return err
	}
	if data.Type() != s.typ {
		return fmt.Errorf("data type %v does not match variable type %v", data.Type(), s.typ)
	}
	if data.Len() != extent.Cells() {
		return fmt.Errorf("data length %d does not match extent %v", data.Len(), extent)
	}
	return s.forEachChunk(row, col, extent, func(chunkRow, chunkCol int) error {
		// Partially covered chunks keep their surrounding cells.
		var target tile.Buffer
		if s.coversChunk(row, col, extent, chunkRow, chunkCol) {
			target = tile.NewBuffer(s.typ, s.chunk.Cells())
		} else {
			var err error
			if target, err = s.ReadChunk(chunkRow, chunkCol); err != nil {
				return err
			}
		}
		s.copyIntersection(data, row, col, extent, target, chunkRow, chunkCol, true)
		return s.writeChunk(chunkRow, chunkCol, target)
	})
}

// forEachChunk calls the callback for every chunk overlapping the given
// rectangle, in row-major chunk order.
func (s *Store) forEachChunk(row, col int, extent tile.Extent, callback func(chunkRow, chunkCol int) error) error {
	firstRow := row / s.chunk.Rows
	lastRow := (row + extent.Rows - 1) / s.chunk.Rows
	firstCol := col / s.chunk.Cols
	lastCol := (col + extent.Cols - 1) / s.chunk.Cols
	for i := firstRow; i <= lastRow; i++ {
		for j := firstCol; j <= lastCol; j++ {
			if err := callback(i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// coversChunk returns true if the rectangle fully covers the data cells
// of the given chunk.
func (s *Store) coversChunk(row, col int, extent tile.Extent, chunkRow, chunkCol int) bool {
	startRow := chunkRow * s.chunk.Rows
	startCol := chunkCol * s.chunk.Cols
	endRow := min(startRow+s.chunk.Rows, s.global.Rows)
	endCol := min(startCol+s.chunk.Cols, s.global.Cols)
	return row <= startRow && row+extent.Rows >= endRow &&
		col <= startCol && col+extent.Cols >= endCol
}

// copyIntersection copies the overlap of the rectangle and the given
// chunk between the rectangle buffer and the chunk buffer. With toChunk
// set the rectangle is the source, otherwise the chunk is.
func (s *Store) copyIntersection(rect tile.Buffer, row, col int, extent tile.Extent, data tile.Buffer, chunkRow, chunkCol int, toChunk bool) {
	startRow := chunkRow * s.chunk.Rows
	startCol := chunkCol * s.chunk.Cols

	firstRow := max(row, startRow)
	lastRow := min(row+extent.Rows, min(startRow+s.chunk.Rows, s.global.Rows))
	firstCol := max(col, startCol)
	lastCol := min(col+extent.Cols, min(startCol+s.chunk.Cols, s.global.Cols))

	for r := firstRow; r < lastRow; r++ {
		rectOffset := (r-row)*extent.Cols + (firstCol - col)
		chunkOffset := (r-startRow)*s.chunk.Cols + (firstCol - startCol)
		if toChunk {
			data.Copy(chunkOffset, rect, rectOffset, lastCol-firstCol)
		} else {
			rect.Copy(rectOffset, data, chunkOffset, lastCol-firstCol)
		}
	}
}

func (s *Store) checkChunk(chunkRow, chunkCol int) error {
	if chunkRow < 0 || chunkCol < 0 ||
		chunkRow*s.chunk.Rows >= s.global.Rows || chunkCol*s.chunk.Cols >= s.global.Cols {
		return fmt.Errorf("chunk (%d,%d): %w", chunkRow, chunkCol, tile.ErrOutOfRange)
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

// The metadata record is [tag][rows][cols][chunkRows][chunkCols], all
// extents as little-endian 32-bit values.
func (s *Store) encodeMeta() []byte {
	res := make([]byte, 0, 17)
	res = append(res, byte(s.typ))
	for _, v := range []int{s.global.Rows, s.global.Cols, s.chunk.Rows, s.chunk.Cols} {
		res = binary.LittleEndian.AppendUint32(res, uint32(v))
	}
	return res
}

func (s *Store) decodeMeta(raw []byte) error {
	if len(raw) != 17 {
		return fmt.Errorf("invalid metadata length %d", len(raw))
	}
	s.typ = tile.ElementType(raw[0])
	s.global.Rows = int(binary.LittleEndian.Uint32(raw[1:]))
	s.global.Cols = int(binary.LittleEndian.Uint32(raw[5:]))
	s.chunk.Rows = int(binary.LittleEndian.Uint32(raw[9:]))
	s.chunk.Cols = int(binary.LittleEndian.Uint32(raw[13:]))
	if !s.global.IsValid() || !s.chunk.IsValid() {
		return fmt.Errorf("invalid extents %v/%v", s.global, s.chunk)
	}
	return nil
}

func metaKey(variable string) []byte {
	return append([]byte(variable), metaKeyTag)
}

func (s *Store) chunkKey(chunkRow, chunkCol int) []byte {
	res := make([]byte, 0, len(s.variable)+9)
	res = append(res, s.variable...)
	res = append(res, chunkKeyTag)
	res = binary.LittleEndian.AppendUint32(res, uint32(chunkRow))
	res = binary.LittleEndian.AppendUint32(res, uint32(chunkCol))
	return res
}

// Source is a tile source over one variable of a LevelDB database
// opened from disk. Closing the source closes the database.
type Source struct {
	*chunk.Producer
	db *leveldb.DB
}

// OpenFile opens the named variable of the database at the given path.
func OpenFile(path, variable string) (*Source, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	store, err := Open(db, variable)
	if err != nil {
		db.Close()
		return nil, err
	}
	producer, err := chunk.NewProducer(store)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Source{Producer: producer, db: db}, nil
}

// CreateFile creates a database at the given path holding the named
// variable with the given geometry and opens it like OpenFile.
func CreateFile(path, variable string, global, chunkExtent tile.Extent, typ tile.ElementType) (*Source, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	store, err := Create(db, variable, global, chunkExtent, typ)
	if err != nil {
		db.Close()
		return nil, err
	}
	producer, err := chunk.NewProducer(store)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Source{Producer: producer, db: db}, nil
}

// Close closes the underlying database. The source must not be used
// afterwards.
func (s *Source) Close() error {
	return s.db.Close()
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
