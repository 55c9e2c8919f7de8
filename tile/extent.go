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

import (
	"fmt"
	"math"
)

// Extent describes the size of a rectangular 2D block of data as a number
// of rows and columns. It is used both for full grids and for single tiles.
type Extent struct {
	Rows int
	Cols int
}

// Cells returns the number of data cells covered by the extent.
func (e Extent) Cells() int {
	return e.Rows * e.Cols
}

// IsValid returns true if both dimensions are positive.
func (e Extent) IsValid() bool {
	return e.Rows > 0 && e.Cols > 0
}

func (e Extent) String() string {
	return fmt.Sprintf("[%d,%d]", e.Rows, e.Cols)
}

// ExtentForBudget derives a square tile extent whose payload of the given
// element type stays within the given byte budget, clamped to the global
// extent of the grid. The resulting extent has at least one row and column.
func ExtentForBudget(budgetBytes int, typ ElementType, global Extent) Extent {
	cells := budgetBytes / typ.Size()
	dim := int(math.Sqrt(float64(cells)))
	if dim < 1 {
		dim = 1
	}
	res := Extent{Rows: dim, Cols: dim}
	if res.Rows > global.Rows {
		res.Rows = global.Rows
	}
	if res.Cols > global.Cols {
		res.Cols = global.Cols
	}
	return res
}
