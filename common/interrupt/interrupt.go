// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package interrupt provides cooperative cancellation helpers for
// long-running flush and prefetch operations, which check for
// cancellation between tiles so a backing store is never left with a
// half-written tile.
package interrupt

import (
	"context"

	"github.com/spatialio/tilegrid/common"
)

const ErrCanceled = common.ConstError("interrupted")

// IsCancelled returns true if the given context's CancelFunc has been called.
// Otherwise, returns false.
func IsCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
