// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Option configures an Allocator during creation.
//
// Example:
//
//	a, err := native.NewAllocator(device, queue,
//	    native.WithLabelPrefix("scene/"),
//	    native.WithLogger(slog.Default()),
//	)
type Option func(*allocatorOptions)

// allocatorOptions holds optional configuration for Allocator creation.
type allocatorOptions struct {
	logger      *slog.Logger
	labelPrefix string
	bufferUsage gputypes.BufferUsage
}

// defaultOptions returns the default allocator options.
func defaultOptions() allocatorOptions {
	return allocatorOptions{
		logger: nil, // Falls back to gfxmem.Logger() at log time
	}
}

// WithLogger sets a logger for this allocator only.
// Without it, the allocator follows gfxmem.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *allocatorOptions) {
		o.logger = l
	}
}

// WithLabelPrefix prepends prefix to the debug label of every resource.
func WithLabelPrefix(prefix string) Option {
	return func(o *allocatorOptions) {
		o.labelPrefix = prefix
	}
}

// WithBufferUsage adds raw WebGPU usage flags to every buffer the
// allocator creates that is not CPU staging memory, for uses the bind
// model does not name (vertex, index, indirect).
//
// Example:
//
//	native.WithBufferUsage(gputypes.BufferUsageVertex)
func WithBufferUsage(u gputypes.BufferUsage) Option {
	return func(o *allocatorOptions) {
		o.bufferUsage |= u
	}
}
