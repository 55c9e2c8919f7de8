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

//go:generate mockgen -source source.go -destination source_mocks.go -package tile

// Source produces tiles on demand from some backing store. Each format
// adapter implements this interface for one open dataset. A source is
// identified by reference, never by its configuration: two sources over
// the same file are still distinct sources.
//
// Sources are owned by the code that opened them. Caches and grids hold
// non-owning references and never close a source they did not open.
type Source interface {
	// Scheme returns the tiling scheme of this source. The result is
	// the same instance for every call.
	Scheme() *TilingScheme

	// Type returns the element type of the tiles this source produces.
	Type() ElementType

	// ReadTile reads the tile at the given position from the backing
	// store. It may block on I/O. On failure it reports a ReadError
	// carrying the position and the underlying cause, and no tile.
	ReadTile(pos Position) (*Tile, error)
}

// Writer is implemented by sources supporting write-back of modified
// tiles. The payload length always matches the actual extent of the
// tile at the given position.
type Writer interface {
	// WriteTile writes the given payload as the content of the tile at
	// the given position to the backing store.
	WriteTile(pos Position, data Buffer) error
}

// SourceWriter is a source whose tiles can be written back.
type SourceWriter interface {
	Source
	Writer
}

// ReadError is reported by a Source failing to read a tile.
type ReadError struct {
	Pos   Position
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %v: %v", e.Pos, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WriteError is reported by a Writer failing to write a tile back to
// its backing store.
type WriteError struct {
	Pos   Position
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %v: %v", e.Pos, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
