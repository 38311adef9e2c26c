// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gfxmem/gpucore"
	"github.com/gogpu/gputypes"
)

// BufferUsage converts a usage hint and bind flags to WebGPU buffer usage.
//
//	GPUOnly        CopySrc|CopyDst
//	Immutable      CopyDst (initial load)
//	Dynamic        CopyDst
//	Persistent(a)  Storage, CopySrc if a has Read, CopyDst if a has Write
//	CPUOnly(Read)  MapRead|CopyDst
//	CPUOnly(Write) MapWrite|CopySrc
//
// BindShaderResource adds Uniform|Storage and BindUnorderedAccess adds
// Storage. Combinations WebGPU cannot express return ErrUnsupportedUsage:
// render or depth binds on buffers, bound staging memory, CPUOnly(ReadWrite),
// and shader writes to GPU read-only usages.
func BufferUsage(u gpucore.Usage, b gpucore.Bind) (gputypes.BufferUsage, error) {
	if err := u.Validate(); err != nil {
		return 0, err
	}
	if !b.Valid() {
		return 0, fmt.Errorf("%w: bind %v", ErrUnsupportedUsage, b)
	}
	if b.Intersects(gpucore.BindRenderTarget | gpucore.BindDepthStencil) {
		return 0, fmt.Errorf("%w: buffer cannot bind as %v", ErrUnsupportedUsage, b)
	}

	var result gputypes.BufferUsage
	access, _ := u.Access()

	switch u.Kind() {
	case gpucore.KindGPUOnly:
		result = gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst
	case gpucore.KindImmutable, gpucore.KindDynamic:
		if b.Contains(gpucore.BindUnorderedAccess) {
			return 0, fmt.Errorf("%w: %v is GPU read-only, cannot bind %v", ErrUnsupportedUsage, u, b)
		}
		result = gputypes.BufferUsageCopyDst
	case gpucore.KindPersistent:
		result = gputypes.BufferUsageStorage
		if access.Contains(gpucore.AccessRead) {
			result |= gputypes.BufferUsageCopySrc
		}
		if access.Contains(gpucore.AccessWrite) {
			result |= gputypes.BufferUsageCopyDst
		}
	case gpucore.KindCPUOnly:
		if b != 0 {
			return 0, fmt.Errorf("%w: staging %v cannot bind %v", ErrUnsupportedUsage, u, b)
		}
		switch access {
		case gpucore.AccessRead:
			result = gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst
		case gpucore.AccessWrite:
			result = gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopySrc
		default:
			return 0, fmt.Errorf("%w: %v, map read and map write are exclusive", ErrUnsupportedUsage, u)
		}
	}

	if b.Contains(gpucore.BindShaderResource) {
		result |= gputypes.BufferUsageUniform | gputypes.BufferUsageStorage
	}
	if b.Contains(gpucore.BindUnorderedAccess) {
		result |= gputypes.BufferUsageStorage
	}

	return result, checkMapUsage(result)
}

// checkMapUsage enforces the WebGPU rule that MapRead combines only with
// CopyDst and MapWrite only with CopySrc.
func checkMapUsage(u gputypes.BufferUsage) error {
	readOK := gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst
	writeOK := gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopySrc
	switch {
	case u&gputypes.BufferUsageMapRead != 0 && u&^readOK != 0:
	case u&gputypes.BufferUsageMapWrite != 0 && u&^writeOK != 0:
	default:
		return nil
	}
	return fmt.Errorf("%w: map usage mixed with other flags (%#x)", ErrUnsupportedUsage, uint64(u))
}

// TextureUsage converts a usage hint and bind flags to WebGPU texture usage.
//
//	GPUOnly            CopySrc|CopyDst
//	Immutable, Dynamic CopyDst
//	Persistent(a)      CopySrc if a has Read, CopyDst if a has Write
//
// Bind flags map to RenderAttachment (render target, depth/stencil),
// TextureBinding (shader resource) and StorageBinding (unordered access).
// CPUOnly textures, color plus depth/stencil, and GPU writes to GPU
// read-only usages return ErrUnsupportedUsage.
func TextureUsage(u gpucore.Usage, b gpucore.Bind) (gputypes.TextureUsage, error) {
	if err := u.Validate(); err != nil {
		return 0, err
	}
	if !b.Valid() {
		return 0, fmt.Errorf("%w: bind %v", ErrUnsupportedUsage, b)
	}
	if b.Contains(gpucore.BindRenderTarget | gpucore.BindDepthStencil) {
		return 0, fmt.Errorf("%w: texture cannot be both color and depth/stencil target", ErrUnsupportedUsage)
	}

	var result gputypes.TextureUsage
	access, _ := u.Access()
	gpuWrites := gpucore.BindRenderTarget | gpucore.BindDepthStencil | gpucore.BindUnorderedAccess

	switch u.Kind() {
	case gpucore.KindGPUOnly:
		result = gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst
	case gpucore.KindImmutable, gpucore.KindDynamic:
		if b.Intersects(gpuWrites) {
			return 0, fmt.Errorf("%w: %v is GPU read-only, cannot bind %v", ErrUnsupportedUsage, u, b)
		}
		result = gputypes.TextureUsageCopyDst
	case gpucore.KindPersistent:
		if access.Contains(gpucore.AccessRead) {
			result |= gputypes.TextureUsageCopySrc
		}
		if access.Contains(gpucore.AccessWrite) {
			result |= gputypes.TextureUsageCopyDst
		}
	case gpucore.KindCPUOnly:
		return 0, fmt.Errorf("%w: %v texture, stage through a buffer", ErrUnsupportedUsage, u)
	}

	if b.Intersects(gpucore.BindRenderTarget | gpucore.BindDepthStencil) {
		result |= gputypes.TextureUsageRenderAttachment
	}
	if b.Contains(gpucore.BindShaderResource) {
		result |= gputypes.TextureUsageTextureBinding
	}
	if b.Contains(gpucore.BindUnorderedAccess) {
		result |= gputypes.TextureUsageStorageBinding
	}

	return result, nil
}
