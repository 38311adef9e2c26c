// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

// Typed is a strongly typed handle around a single raw backend value.
//
// K is a phantom kind that only distinguishes handles at compile time;
// it is never instantiated. Handles of different kinds sharing the same raw
// representation are distinct types. A Typed value is immutable: the raw
// value is set by NewTyped and can only be read back.
//
// No validation of the raw value is performed. Its correctness is the
// responsibility of the backend that produced it.
type Typed[K, R any] struct {
	raw R
}

// NewTyped wraps raw as a handle of kind K.
func NewTyped[K, R any](raw R) Typed[K, R] {
	return Typed[K, R]{raw: raw}
}

// Raw returns the wrapped backend value.
func (t Typed[K, R]) Raw() R {
	return t.raw
}

// Resource kinds used as the K parameter of [Typed].
type (
	// BufferKind tags buffer handles.
	BufferKind struct{}

	// TextureKind tags texture handles.
	TextureKind struct{}

	// ShaderKind tags shader module handles.
	ShaderKind struct{}
)
