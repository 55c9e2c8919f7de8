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

// ElementType enumerates the cell value types a grid can hold. All cells
// of a grid share a single element type, fixed at grid creation.
type ElementType byte

const (
	Uint8 ElementType = iota
	Int16
	Int32
	Int64
	Float32
	Float64
)

// Size returns the storage size of a single element in bytes.
func (t ElementType) Size() int {
	switch t {
	case Uint8:
		return 1
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	}
	panic(fmt.Sprintf("unknown element type %v", t))
}

func (t ElementType) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("ElementType(%d)", byte(t))
}
