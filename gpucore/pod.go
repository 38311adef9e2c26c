// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import (
	"fmt"
	"unsafe"
)

// Scalar is the set of primitive numeric types that have no invalid bit
// patterns. Every term has nonzero size.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Vector is the set of 2, 3 and 4 element arrays of a [Scalar].
type Vector interface {
	~[2]int | ~[2]int8 | ~[2]int16 | ~[2]int32 | ~[2]int64 |
		~[2]uint | ~[2]uint8 | ~[2]uint16 | ~[2]uint32 | ~[2]uint64 | ~[2]uintptr |
		~[2]float32 | ~[2]float64 |
		~[3]int | ~[3]int8 | ~[3]int16 | ~[3]int32 | ~[3]int64 |
		~[3]uint | ~[3]uint8 | ~[3]uint16 | ~[3]uint32 | ~[3]uint64 | ~[3]uintptr |
		~[3]float32 | ~[3]float64 |
		~[4]int | ~[4]int8 | ~[4]int16 | ~[4]int32 | ~[4]int64 |
		~[4]uint | ~[4]uint8 | ~[4]uint16 | ~[4]uint32 | ~[4]uint64 | ~[4]uintptr |
		~[4]float32 | ~[4]float64
}

// Matrix is the set of square float matrix layouts, flat or nested.
type Matrix interface {
	~[9]float32 | ~[16]float32 | ~[2][2]float32 | ~[3][3]float32 | ~[4][4]float32 |
		~[9]float64 | ~[16]float64 | ~[2][2]float64 | ~[3][3]float64 | ~[4][4]float64
}

// Layout is the set of common interleaved vertex records, wide vectors and
// single-element arrays. A [2][4]float32 holds, for example, a position and
// a color side by side.
type Layout interface {
	~[2][3]float32 | ~[2][4]float32 | ~[3][4]float32 | ~[4][3]float32 |
		~[2][3]float64 | ~[2][4]float64 |
		~[2][4]uint8 | ~[2][4]uint16 | ~[2][4]int32 | ~[2][4]uint32 |
		~[8]uint8 | ~[8]uint16 | ~[8]int32 | ~[8]uint32 | ~[8]float32 |
		~[16]uint8 | ~[16]uint16 | ~[16]int32 | ~[16]uint32 |
		~[1]int | ~[1]int8 | ~[1]int16 | ~[1]int32 | ~[1]int64 |
		~[1]uint | ~[1]uint8 | ~[1]uint16 | ~[1]uint32 | ~[1]uint64 | ~[1]uintptr |
		~[1]float32 | ~[1]float64
}

// Pod is the plain-old-data capability: types that have no invalid bit
// patterns and can be constructed from any bit pattern of the right size.
//
// The set is closed and checked at compile time. Adding a term is an
// unchecked assertion that the type has nonzero size, contains no pointers,
// and that every bit pattern is a valid value. Structs are not admitted
// because Go may insert padding between fields.
type Pod interface {
	Scalar | Vector | Matrix | Layout
}

// SizeOf returns the size of T in bytes.
func SizeOf[T Pod]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// ByteLen returns the total byte length of s.
func ByteLen[T Pod](s []T) int {
	return SizeOf[T]() * len(s)
}

// CastSlice reinterprets s as a slice of B sharing the same memory.
//
// The result has length and capacity len(s)*sizeof(A)/sizeof(B). An empty
// s yields an empty result (nil for nil) that does not alias s. Writes
// through either slice are visible through the other, and the result must
// not outlive the memory of s. No element is converted: a float32 viewed as
// uint32 yields its IEEE-754 bits. Multi-byte values keep host byte order.
//
// CastSlice panics if the byte length of s is not a multiple of the size of
// B, or if the first element of s is not aligned for B.
func CastSlice[B, A Pod](s []A) []B {
	var (
		a A
		b B
	)
	sizeA, sizeB := unsafe.Sizeof(a), unsafe.Sizeof(b)
	if sizeB == 0 {
		panic(fmt.Sprintf("gpucore: cannot cast to zero-sized %T", b))
	}
	rawLen := sizeA * uintptr(len(s))
	n := rawLen / sizeB
	if sizeB*n != rawLen {
		panic(fmt.Sprintf("gpucore: cannot cast %d bytes of []%T to []%T: not a multiple of %d",
			rawLen, a, b, sizeB))
	}
	if n == 0 {
		if s == nil {
			return nil
		}
		return []B{}
	}
	p := unsafe.SliceData(s)
	if uintptr(unsafe.Pointer(p))%unsafe.Alignof(b) != 0 {
		panic(fmt.Sprintf("gpucore: cannot cast []%T to []%T: address %p not aligned to %d",
			a, b, p, unsafe.Alignof(b)))
	}
	return unsafe.Slice((*B)(unsafe.Pointer(p)), n)
}

// CanCast reports whether CastSlice[B](s) would succeed.
func CanCast[B, A Pod](s []A) bool {
	var (
		a A
		b B
	)
	sizeB := unsafe.Sizeof(b)
	if sizeB == 0 {
		return false
	}
	rawLen := unsafe.Sizeof(a) * uintptr(len(s))
	if rawLen%sizeB != 0 {
		return false
	}
	if rawLen == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))%unsafe.Alignof(b) == 0
}

// AsBytes returns the bytes of s without copying.
func AsBytes[A Pod](s []A) []byte {
	return CastSlice[byte](s)
}
