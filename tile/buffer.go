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
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// Buffer is a flat, row-major sequence of grid cell values of a single
// element type. It is the payload of a Tile and the exchange format
// between grids and tile sources.
//
// Cell values are accessed uniformly as float64. For integer element
// types, values written through Set are truncated to the target type the
// same way a Go conversion would truncate them.
type Buffer struct {
	typ  ElementType
	data any // one of []uint8, []int16, []int32, []int64, []float32, []float64
}

// NewBuffer creates a zero-initialized buffer of the given element type
// and length.
func NewBuffer(typ ElementType, length int) Buffer {
	switch typ {
	case Uint8:
		return Buffer{typ, make([]uint8, length)}
	case Int16:
		return Buffer{typ, make([]int16, length)}
	case Int32:
		return Buffer{typ, make([]int32, length)}
	case Int64:
		return Buffer{typ, make([]int64, length)}
	case Float32:
		return Buffer{typ, make([]float32, length)}
	case Float64:
		return Buffer{typ, make([]float64, length)}
	}
	panic(fmt.Sprintf("unknown element type %v", typ))
}

// NewBufferOf wraps an existing typed slice in a buffer without copying.
// The slice must be one of the supported element slice types.
func NewBufferOf(data any) (Buffer, error) {
	switch data.(type) {
	case []uint8:
		return Buffer{Uint8, data}, nil
	case []int16:
		return Buffer{Int16, data}, nil
	case []int32:
		return Buffer{Int32, data}, nil
	case []int64:
		return Buffer{Int64, data}, nil
	case []float32:
		return Buffer{Float32, data}, nil
	case []float64:
		return Buffer{Float64, data}, nil
	}
	return Buffer{}, fmt.Errorf("unsupported element slice type %T", data)
}

// Type returns the element type of the cells in this buffer.
func (b Buffer) Type() ElementType {
	return b.typ
}

// Len returns the number of cells in this buffer.
func (b Buffer) Len() int {
	switch data := b.data.(type) {
	case []uint8:
		return len(data)
	case []int16:
		return len(data)
	case []int32:
		return len(data)
	case []int64:
		return len(data)
	case []float32:
		return len(data)
	case []float64:
		return len(data)
	}
	return 0
}

// SizeInBytes returns the storage size of the cell data in bytes.
func (b Buffer) SizeInBytes() int {
	return b.Len() * b.typ.Size()
}

// Get returns the cell value at the given index as a float64.
func (b Buffer) Get(i int) float64 {
	switch data := b.data.(type) {
	case []uint8:
		return float64(data[i])
	case []int16:
		return float64(data[i])
	case []int32:
		return float64(data[i])
	case []int64:
		return float64(data[i])
	case []float32:
		return float64(data[i])
	case []float64:
		return data[i]
	}
	panic("uninitialized buffer")
}

// Set updates the cell value at the given index. For integer element
// types the value is truncated toward zero.
func (b Buffer) Set(i int, value float64) {
	switch data := b.data.(type) {
	case []uint8:
		data[i] = uint8(value)
	case []int16:
		data[i] = int16(value)
	case []int32:
		data[i] = int32(value)
	case []int64:
		data[i] = int64(value)
	case []float32:
		data[i] = float32(value)
	case []float64:
		data[i] = value
	default:
		panic("uninitialized buffer")
	}
}

// Copy copies n cells from src starting at srcOff into this buffer
// starting at dstOff. Both buffers must have the same element type.
func (b Buffer) Copy(dstOff int, src Buffer, srcOff, n int) {
	if b.typ != src.typ {
		panic(fmt.Sprintf("element type mismatch: %v vs %v", b.typ, src.typ))
	}
	switch dst := b.data.(type) {
	case []uint8:
		copy(dst[dstOff:dstOff+n], src.data.([]uint8)[srcOff:])
	case []int16:
		copy(dst[dstOff:dstOff+n], src.data.([]int16)[srcOff:])
	case []int32:
		copy(dst[dstOff:dstOff+n], src.data.([]int32)[srcOff:])
	case []int64:
		copy(dst[dstOff:dstOff+n], src.data.([]int64)[srcOff:])
	case []float32:
		copy(dst[dstOff:dstOff+n], src.data.([]float32)[srcOff:])
	case []float64:
		copy(dst[dstOff:dstOff+n], src.data.([]float64)[srcOff:])
	default:
		panic("uninitialized buffer")
	}
}

// Clone returns a deep copy of this buffer.
func (b Buffer) Clone() Buffer {
	res := NewBuffer(b.typ, b.Len())
	res.Copy(0, b, 0, b.Len())
	return res
}

// Data returns the underlying typed slice. Mutating the result mutates
// the buffer.
func (b Buffer) Data() any {
	return b.data
}

// Slice returns the typed sub-slice of n cells starting at off, sharing
// storage with the buffer.
func (b Buffer) Slice(off, n int) any {
	switch data := b.data.(type) {
	case []uint8:
		return data[off : off+n]
	case []int16:
		return data[off : off+n]
	case []int32:
		return data[off : off+n]
	case []int64:
		return data[off : off+n]
	case []float32:
		return data[off : off+n]
	case []float64:
		return data[off : off+n]
	}
	panic("uninitialized buffer")
}

// Equal returns true if both buffers have the same element type, length,
// and cell values. Values are compared in their stored type, so integer
// cells beyond float64 precision are not conflated.
func (b Buffer) Equal(other Buffer) bool {
	if b.typ != other.typ || b.Len() != other.Len() {
		return false
	}
	switch data := b.data.(type) {
	case []uint8:
		return slices.Equal(data, other.data.([]uint8))
	case []int16:
		return slices.Equal(data, other.data.([]int16))
	case []int32:
		return slices.Equal(data, other.data.([]int32))
	case []int64:
		return slices.Equal(data, other.data.([]int64))
	case []float32:
		return slices.Equal(data, other.data.([]float32))
	case []float64:
		return slices.Equal(data, other.data.([]float64))
	}
	return true // both uninitialized
}

// Encode appends the little-endian binary representation of the cell
// data to dst and returns the extended slice.
func (b Buffer) Encode(dst []byte) []byte {
	switch data := b.data.(type) {
	case []uint8:
		return append(dst, data...)
	case []int16:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(v))
		}
	case []int32:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
		}
	case []int64:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
		}
	case []float32:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
		}
	case []float64:
		for _, v := range data {
			dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
		}
	default:
		panic("uninitialized buffer")
	}
	return dst
}

// DecodeBuffer parses the little-endian binary representation produced by
// Encode into a new buffer of the given element type.
func DecodeBuffer(typ ElementType, raw []byte) (Buffer, error) {
	if len(raw)%typ.Size() != 0 {
		return Buffer{}, fmt.Errorf("invalid data length %d for element type %v", len(raw), typ)
	}
	length := len(raw) / typ.Size()
	res := NewBuffer(typ, length)
	switch data := res.data.(type) {
	case []uint8:
		copy(data, raw)
	case []int16:
		for i := range data {
			data[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
		}
	case []int32:
		for i := range data {
			data[i] = int32(binary.LittleEndian.Uint32(raw[4*i:]))
		}
	case []int64:
		for i := range data {
			data[i] = int64(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	case []float32:
		for i := range data {
			data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
		}
	case []float64:
		for i := range data {
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	}
	return res, nil
}
