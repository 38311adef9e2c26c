// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package native allocates GPU resources on gogpu/wgpu/hal from gpucore
// usage descriptions.
//
// [BufferUsage] and [TextureUsage] translate a gpucore.Usage and
// gpucore.Bind pair into WebGPU usage flags, rejecting combinations WebGPU
// cannot express with [ErrUnsupportedUsage]. [Allocator] creates HAL buffers,
// textures and shader modules with those flags and returns them behind
// gpucore.Typed handles. [Upload] moves Pod slices into buffers without an
// intermediate copy.
//
// Example:
//
//	a, err := native.NewAllocator(device, queue)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	vb, err := a.CreateBuffer(native.BufferDesc{
//	    Label: "vertices",
//	    Size:  uint64(gpucore.ByteLen(vertices)),
//	    Usage: gpucore.Dynamic(),
//	    Bind:  gpucore.BindShaderResource,
//	    Extra: gputypes.BufferUsageVertex,
//	})
//	if err != nil {
//	    return err
//	}
//	err = native.Upload(a, vb, 0, vertices)
package native
