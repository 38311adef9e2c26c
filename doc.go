// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfxmem describes GPU resource memory for graphics backends.
//
// # Overview
//
// gfxmem is a small memory-description layer that sits between application
// code and a GPU hardware abstraction layer. It declares how resource memory
// will be used before the resource exists, and moves typed CPU data into
// upload APIs without copying.
//
// # Architecture
//
// The module is organized into:
//   - gpucore: usage hints, access and bind flags, the Pod capability,
//     CastSlice, and phantom-typed handles. Backend independent.
//   - backend/native: an allocator over gogpu/wgpu/hal that translates
//     usage hints into gputypes flags and uploads Pod data.
//   - cmd/gfxmemdemo: an end-to-end run on the noop HAL backend.
//
// # Logging
//
// gfxmem is silent by default. Use [SetLogger] to route diagnostics from all
// sub-packages to a [log/slog.Logger].
package gfxmem
