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
	"testing"
)

var allElementTypes = []ElementType{Uint8, Int16, Int32, Int64, Float32, Float64}

func TestBuffer_GetAndSetRoundTrip(t *testing.T) {
	for _, typ := range allElementTypes {
		t.Run(typ.String(), func(t *testing.T) {
			buf := NewBuffer(typ, 10)
			if got, want := buf.Type(), typ; got != want {
				t.Fatalf("wrong element type: got %v, want %v", got, want)
			}
			if got, want := buf.Len(), 10; got != want {
				t.Fatalf("wrong length: got %d, want %d", got, want)
			}
			for i := 0; i < buf.Len(); i++ {
				if got := buf.Get(i); got != 0 {
					t.Fatalf("new buffer should be zero at %d, got %v", i, got)
				}
			}
			for i := 0; i < buf.Len(); i++ {
				buf.Set(i, float64(i+1))
			}
			for i := 0; i < buf.Len(); i++ {
				if got, want := buf.Get(i), float64(i+1); got != want {
					t.Errorf("wrong value at %d: got %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestBuffer_IntegerTypesTruncate(t *testing.T) {
	buf := NewBuffer(Int32, 1)
	buf.Set(0, 12.9)
	if got, want := buf.Get(0), 12.0; got != want {
		t.Errorf("value should be truncated toward zero: got %v, want %v", got, want)
	}
	buf.Set(0, -12.9)
	if got, want := buf.Get(0), -12.0; got != want {
		t.Errorf("value should be truncated toward zero: got %v, want %v", got, want)
	}
}

func TestBuffer_SizeInBytesScalesWithElementType(t *testing.T) {
	for _, typ := range allElementTypes {
		buf := NewBuffer(typ, 7)
		if got, want := buf.SizeInBytes(), 7*typ.Size(); got != want {
			t.Errorf("wrong size of %v buffer: got %d, want %d", typ, got, want)
		}
	}
}

func TestBuffer_WrapsExistingSlices(t *testing.T) {
	data := []float32{1, 2, 3}
	buf, err := NewBufferOf(data)
	if err != nil {
		t.Fatalf("failed to wrap slice: %v", err)
	}
	if got, want := buf.Type(), Float32; got != want {
		t.Errorf("wrong element type: got %v, want %v", got, want)
	}
	buf.Set(1, 5)
	if data[1] != 5 {
		t.Errorf("buffer should share the wrapped slice, got %v", data)
	}
	if _, err := NewBufferOf([]string{"no"}); err == nil {
		t.Errorf("wrapping an unsupported slice type should fail")
	}
}

func TestBuffer_CloneIsIndependent(t *testing.T) {
	buf := NewBuffer(Int16, 5)
	for i := 0; i < buf.Len(); i++ {
		buf.Set(i, float64(i))
	}
	clone := buf.Clone()
	clone.Set(2, 99)
	if got, want := buf.Get(2), 2.0; got != want {
		t.Errorf("modifying the clone changed the original: got %v, want %v", got, want)
	}
	if got, want := clone.Get(2), 99.0; got != want {
		t.Errorf("wrong value in clone: got %v, want %v", got, want)
	}
}

func TestBuffer_CopyTransfersSubRanges(t *testing.T) {
	src := NewBuffer(Float64, 6)
	for i := 0; i < src.Len(); i++ {
		src.Set(i, float64(10+i))
	}
	dst := NewBuffer(Float64, 6)
	dst.Copy(2, src, 1, 3)
	want := []float64{0, 0, 11, 12, 13, 0}
	for i, v := range want {
		if got := dst.Get(i); got != v {
			t.Errorf("wrong value at %d: got %v, want %v", i, got, v)
		}
	}
}

func TestBuffer_CopyDetectsTypeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("copy between different element types should panic")
		}
	}()
	NewBuffer(Float64, 3).Copy(0, NewBuffer(Int32, 3), 0, 3)
}

func TestBuffer_EncodeDecodeRoundTrip(t *testing.T) {
	for _, typ := range allElementTypes {
		t.Run(typ.String(), func(t *testing.T) {
			buf := NewBuffer(typ, 4)
			buf.Set(0, 1)
			buf.Set(1, 42)
			buf.Set(2, 7)
			buf.Set(3, 120)
			raw := buf.Encode(nil)
			if got, want := len(raw), buf.SizeInBytes(); got != want {
				t.Fatalf("wrong encoded length: got %d, want %d", got, want)
			}
			restored, err := DecodeBuffer(typ, raw)
			if err != nil {
				t.Fatalf("failed to decode buffer: %v", err)
			}
			if !buf.Equal(restored) {
				t.Errorf("decoded buffer differs from original")
			}
		})
	}
}

func TestBuffer_EqualComparesStoredValues(t *testing.T) {
	a, err := NewBufferOf([]int64{1 << 53})
	if err != nil {
		t.Fatalf("failed to wrap slice: %v", err)
	}
	// The two values collapse to the same float64, but differ as int64.
	b, err := NewBufferOf([]int64{1<<53 + 1})
	if err != nil {
		t.Fatalf("failed to wrap slice: %v", err)
	}
	if a.Get(0) != b.Get(0) {
		t.Fatalf("test values should be identical as float64")
	}
	if a.Equal(b) {
		t.Errorf("buffers with different int64 values should not be equal")
	}
	if !a.Equal(a.Clone()) {
		t.Errorf("a buffer should equal its clone")
	}
}

func TestDecodeBuffer_RejectsTruncatedData(t *testing.T) {
	if _, err := DecodeBuffer(Float64, make([]byte, 12)); err == nil {
		t.Errorf("decoding 12 bytes as float64 data should fail")
	}
}
