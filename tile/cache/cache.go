// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cache

import (
	"github.com/spatialio/tilegrid/common"
	"github.com/spatialio/tilegrid/tile"
)

//go:generate mockgen -source cache.go -destination cache_mocks.go -package cache

// DefaultByteLimit is the byte budget of caches created without an
// explicit limit.
const DefaultByteLimit = 16 << 20 // 16 MiB

// Key identifies one cached tile. It combines the identity of the
// source the tile was read from with the tile's position. The source
// component compares by reference: the same position obtained from two
// different source instances forms two distinct keys.
type Key struct {
	Source tile.Source
	Pos    tile.Position
}

// Cache is a bounded in-memory store of clean tiles shared between any
// number of grids. Implementations must be safe for concurrent use.
//
// A cache holds non-owning references to the sources appearing in its
// keys. Closing a source is the opener's job; before doing so the opener
// must drop the source's entries using RemoveSource.
type Cache interface {
	// Get returns the cached tile for the given key, or false if the
	// key is not present.
	Get(key Key) (*tile.Tile, bool)

	// Put adds the given tile under the given key, replacing any
	// previous entry for the key. The cache may drop other entries to
	// stay within its byte limit.
	Put(key Key, t *tile.Tile)

	// Remove drops the entry for the given key, returning the removed
	// tile if it was present.
	Remove(key Key) (*tile.Tile, bool)

	// RemoveSource drops all entries keyed by the given source.
	RemoveSource(src tile.Source)

	// Size returns the total footprint of all cached tiles in bytes.
	Size() int

	// Limit returns the current byte budget of this cache.
	Limit() int

	// SetLimit updates the byte budget, dropping entries as needed to
	// fit the new budget.
	SetLimit(limit int)

	// Clear drops all entries.
	Clear()

	common.MemoryFootprintProvider
}
