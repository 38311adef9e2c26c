// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "errors"

// Package errors for the native allocator.
var (
	// ErrNilDevice is returned when an allocator is created without a device or queue.
	ErrNilDevice = errors.New("native: nil HAL device or queue")

	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("native: provider does not expose HAL device")

	// ErrClosed is returned for operations on a closed allocator.
	ErrClosed = errors.New("native: allocator closed")

	// ErrInvalidSize is returned when a resource size or dimension is zero.
	ErrInvalidSize = errors.New("native: invalid resource size")

	// ErrInvalidFormat is returned when a texture format is undefined.
	ErrInvalidFormat = errors.New("native: undefined texture format")

	// ErrUnsupportedUsage is returned when a usage and bind combination
	// cannot be expressed with WebGPU usage flags.
	ErrUnsupportedUsage = errors.New("native: unsupported usage")

	// ErrAccessDenied is returned when the CPU writes to memory whose usage
	// does not allow it.
	ErrAccessDenied = errors.New("native: CPU access denied by usage")

	// ErrOutOfRange is returned when a write falls outside a buffer.
	ErrOutOfRange = errors.New("native: write out of range")

	// ErrUnaligned is returned when a write offset or size is not a
	// multiple of CopyAlignment.
	ErrUnaligned = errors.New("native: write not aligned")

	// ErrUnknownResource is returned for nil, destroyed, or foreign resources.
	ErrUnknownResource = errors.New("native: unknown resource")

	// ErrShaderSize is returned when compiled SPIR-V is not a whole number of words.
	ErrShaderSize = errors.New("native: SPIR-V size is not a multiple of 4")
)
