// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpucore describes GPU resource memory independently of any backend.
//
// It provides three pieces:
//
//   - A descriptor model: [Usage] says how CPU and GPU will touch a resource's
//     memory, [Access] carries explicit CPU access for the usages that need
//     it, and [Bind] lists the pipeline stages the resource may be attached
//     to. These are plain values, consumed by backends when they pick device
//     memory and usage flags.
//
//   - The [Pod] capability and [CastSlice], which views a slice of one
//     plain-data element type as a slice of another without copying.
//
//   - [Typed], a phantom-typed wrapper that gives backend handles a distinct
//     compile-time identity per resource kind.
//
// # Slice Reinterpretation
//
// CastSlice is used right before handing CPU data to a transfer API:
//
//	vertices := [][3]float32{{0, 1, 0}, {-1, -1, 0}, {1, -1, 0}}
//	queue.WriteBuffer(buf, 0, gpucore.AsBytes(vertices))
//
// The byte length must be preserved exactly. Casting 12 bytes to 8-byte
// elements panics rather than dropping the trailing 4 bytes.
//
// # Usage Hints
//
//	staging := gpucore.CPUOnly(gpucore.AccessWrite)
//	target := gpucore.GPUOnly()
//	bind := gpucore.BindRenderTarget | gpucore.BindShaderResource
//
// All values here are immutable and safe to share between goroutines.
package gpucore
