//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gfxmem"
	"github.com/gogpu/gfxmem/gpucore"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// CopyAlignment is the required alignment, in bytes, of buffer sizes and
// of queue write offsets and lengths.
const CopyAlignment = 4

// Allocator creates HAL resources from gpucore usage descriptions.
// It translates usage hints and bind flags into WebGPU usage, wraps raw HAL
// objects in typed handles, and tracks them until they are destroyed.
//
// Thread Safety: Allocator is safe for concurrent use from multiple goroutines.
// All resource tracking is protected by a mutex.
type Allocator struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue
	opts   allocatorOptions

	// ID generation
	nextID atomic.Uint64

	// Live resources by ID
	buffers  map[gpucore.BufferID]*Buffer
	textures map[gpucore.TextureID]*Texture
	shaders  map[gpucore.ShaderModuleID]*Shader
	closed   bool

	// write performs queue uploads.
	write func(buf hal.Buffer, offset uint64, data []byte)
}

// NewAllocator creates an Allocator on the given device and queue.
func NewAllocator(device hal.Device, queue hal.Queue, opts ...Option) (*Allocator, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	a := &Allocator{
		device:   device,
		queue:    queue,
		opts:     o,
		buffers:  make(map[gpucore.BufferID]*Buffer),
		textures: make(map[gpucore.TextureID]*Texture),
		shaders:  make(map[gpucore.ShaderModuleID]*Shader),
	}
	a.write = func(buf hal.Buffer, offset uint64, data []byte) {
		a.queue.WriteBuffer(buf, offset, data)
	}

	// Start ID generation at 1 (0 is invalid)
	a.nextID.Store(1)

	a.log().Info("native: allocator opened", "labelPrefix", o.labelPrefix)
	return a, nil
}

// NewAllocatorFromProvider creates an Allocator on a device shared by a
// host application (e.g., gogpu). The provider must also implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func NewAllocatorFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Allocator, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewAllocator(device, queue, opts...)
}

// newID generates a unique resource ID.
func (a *Allocator) newID() uint64 {
	return a.nextID.Add(1) - 1
}

func (a *Allocator) log() *slog.Logger {
	if a.opts.logger != nil {
		return a.opts.logger
	}
	return gfxmem.Logger()
}

func (a *Allocator) label(l string) string {
	return a.opts.labelPrefix + l
}

// === Buffers ===

// BufferDesc describes a buffer to create.
type BufferDesc struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer size in bytes. The device allocation is rounded up
	// to CopyAlignment.
	Size uint64

	// Usage declares CPU and GPU access to the buffer memory.
	Usage gpucore.Usage

	// Bind lists the pipeline stages the buffer may be attached to.
	Bind gpucore.Bind

	// Extra is OR-ed into the translated usage, for uses the bind model
	// does not name (vertex, index, indirect).
	Extra gputypes.BufferUsage
}

// Buffer is a device buffer created by an Allocator.
type Buffer struct {
	handle gpucore.Typed[gpucore.BufferKind, hal.Buffer]
	id     gpucore.BufferID
	label  string
	size   uint64
	usage  gpucore.Usage
	bind   gpucore.Bind
	flags  gputypes.BufferUsage

	mu     sync.Mutex
	loaded bool
}

// Handle returns the typed handle around the HAL buffer.
func (b *Buffer) Handle() gpucore.Typed[gpucore.BufferKind, hal.Buffer] { return b.handle }

// Raw returns the HAL buffer.
func (b *Buffer) Raw() hal.Buffer { return b.handle.Raw() }

// ID returns the allocator-assigned ID.
func (b *Buffer) ID() gpucore.BufferID { return b.id }

// Label returns the debug label, including the allocator prefix.
func (b *Buffer) Label() string { return b.label }

// Size returns the requested size in bytes.
func (b *Buffer) Size() uint64 { return b.size }

// Usage returns the usage hint the buffer was created with.
func (b *Buffer) Usage() gpucore.Usage { return b.usage }

// Bind returns the bind flags the buffer was created with.
func (b *Buffer) Bind() gpucore.Bind { return b.bind }

// Flags returns the WebGPU usage the buffer was allocated with.
func (b *Buffer) Flags() gputypes.BufferUsage { return b.flags }

// CreateBuffer creates a buffer.
func (a *Allocator) CreateBuffer(desc BufferDesc) (*Buffer, error) {
	if desc.Size == 0 {
		return nil, fmt.Errorf("create buffer %q: %w", desc.Label, ErrInvalidSize)
	}

	flags, err := BufferUsage(desc.Usage, desc.Bind)
	if err != nil {
		a.log().Warn("native: buffer usage rejected",
			"label", desc.Label, "usage", desc.Usage, "bind", desc.Bind, "err", err)
		return nil, fmt.Errorf("create buffer %q: %w", desc.Label, err)
	}
	if desc.Usage.Kind() != gpucore.KindCPUOnly {
		flags |= a.opts.bufferUsage
	}
	flags |= desc.Extra
	if err := checkMapUsage(flags); err != nil {
		return nil, fmt.Errorf("create buffer %q: %w", desc.Label, err)
	}

	label := a.label(desc.Label)
	halBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignUp(desc.Size, CopyAlignment),
		Usage: flags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create buffer %q: %w", label, err)
	}

	b := &Buffer{
		handle: gpucore.NewTyped[gpucore.BufferKind](halBuf),
		id:     gpucore.BufferID(a.newID()),
		label:  label,
		size:   desc.Size,
		usage:  desc.Usage,
		bind:   desc.Bind,
		flags:  flags,
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.device.DestroyBuffer(halBuf)
		return nil, ErrClosed
	}
	a.buffers[b.id] = b
	a.mu.Unlock()

	a.log().Debug("native: buffer created",
		"id", b.id, "label", label, "size", desc.Size, "usage", desc.Usage, "bind", desc.Bind)
	return b, nil
}

// DestroyBuffer releases a buffer. Destroying a buffer that is nil, already
// destroyed, or owned by another allocator has no effect.
func (a *Allocator) DestroyBuffer(b *Buffer) {
	if b == nil {
		return
	}
	a.mu.Lock()
	owned := a.buffers[b.id] == b
	if owned {
		delete(a.buffers, b.id)
	}
	a.mu.Unlock()

	if owned {
		a.device.DestroyBuffer(b.Raw())
		a.log().Debug("native: buffer destroyed", "id", b.id, "label", b.label)
	}
}

// === Textures ===

// TextureDesc describes a texture to create.
type TextureDesc struct {
	// Label is an optional debug label.
	Label string

	// Width, Height and DepthOrArrayLayers give the texture extent.
	// A zero DepthOrArrayLayers is treated as 1.
	Width              uint32
	Height             uint32
	DepthOrArrayLayers uint32

	// MipLevelCount and SampleCount default to 1 when zero.
	MipLevelCount uint32
	SampleCount   uint32

	// Dimension is the texture dimensionality.
	Dimension gputypes.TextureDimension

	// Format is the texel format.
	Format gputypes.TextureFormat

	// Usage declares CPU and GPU access to the texture memory.
	Usage gpucore.Usage

	// Bind lists the pipeline stages the texture may be attached to.
	Bind gpucore.Bind
}

// Texture2D returns a descriptor for a single-level 2D texture.
func Texture2D(label string, width, height uint32, format gputypes.TextureFormat, usage gpucore.Usage, bind gpucore.Bind) TextureDesc {
	return TextureDesc{
		Label:     label,
		Width:     width,
		Height:    height,
		Dimension: gputypes.TextureDimension2D,
		Format:    format,
		Usage:     usage,
		Bind:      bind,
	}
}

// Texture is a device texture created by an Allocator.
type Texture struct {
	handle gpucore.Typed[gpucore.TextureKind, hal.Texture]
	id     gpucore.TextureID
	desc   TextureDesc
	flags  gputypes.TextureUsage
}

// Handle returns the typed handle around the HAL texture.
func (t *Texture) Handle() gpucore.Typed[gpucore.TextureKind, hal.Texture] { return t.handle }

// Raw returns the HAL texture.
func (t *Texture) Raw() hal.Texture { return t.handle.Raw() }

// ID returns the allocator-assigned ID.
func (t *Texture) ID() gpucore.TextureID { return t.id }

// Desc returns the resolved descriptor the texture was created with.
func (t *Texture) Desc() TextureDesc { return t.desc }

// Flags returns the WebGPU usage the texture was allocated with.
func (t *Texture) Flags() gputypes.TextureUsage { return t.flags }

// CreateTexture creates a texture.
func (a *Allocator) CreateTexture(desc TextureDesc) (*Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("create texture %q: %w: %dx%d", desc.Label, ErrInvalidSize, desc.Width, desc.Height)
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, ErrInvalidFormat)
	}

	flags, err := TextureUsage(desc.Usage, desc.Bind)
	if err != nil {
		a.log().Warn("native: texture usage rejected",
			"label", desc.Label, "usage", desc.Usage, "bind", desc.Bind, "err", err)
		return nil, fmt.Errorf("create texture %q: %w", desc.Label, err)
	}

	resolved := desc
	resolved.Label = a.label(desc.Label)
	resolved.DepthOrArrayLayers = max(desc.DepthOrArrayLayers, 1)
	resolved.MipLevelCount = max(desc.MipLevelCount, 1)
	resolved.SampleCount = max(desc.SampleCount, 1)

	halTex, err := a.device.CreateTexture(&hal.TextureDescriptor{
		Label: resolved.Label,
		Size: hal.Extent3D{
			Width:              resolved.Width,
			Height:             resolved.Height,
			DepthOrArrayLayers: resolved.DepthOrArrayLayers,
		},
		MipLevelCount: resolved.MipLevelCount,
		SampleCount:   resolved.SampleCount,
		Dimension:     resolved.Dimension,
		Format:        resolved.Format,
		Usage:         flags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %q: %w", resolved.Label, err)
	}

	t := &Texture{
		handle: gpucore.NewTyped[gpucore.TextureKind](halTex),
		id:     gpucore.TextureID(a.newID()),
		desc:   resolved,
		flags:  flags,
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.device.DestroyTexture(halTex)
		return nil, ErrClosed
	}
	a.textures[t.id] = t
	a.mu.Unlock()

	a.log().Debug("native: texture created",
		"id", t.id, "label", resolved.Label, "width", resolved.Width, "height", resolved.Height,
		"usage", desc.Usage, "bind", desc.Bind)
	return t, nil
}

// DestroyTexture releases a texture. Destroying a texture that is nil,
// already destroyed, or owned by another allocator has no effect.
func (a *Allocator) DestroyTexture(t *Texture) {
	if t == nil {
		return
	}
	a.mu.Lock()
	owned := a.textures[t.id] == t
	if owned {
		delete(a.textures, t.id)
	}
	a.mu.Unlock()

	if owned {
		a.device.DestroyTexture(t.Raw())
		a.log().Debug("native: texture destroyed", "id", t.id, "label", t.desc.Label)
	}
}

// === Lifecycle ===

// Stats reports the resources an Allocator currently tracks.
type Stats struct {
	Buffers     int
	Textures    int
	Shaders     int
	BufferBytes uint64
}

// Stats returns a snapshot of live resources.
func (a *Allocator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Stats{
		Buffers:  len(a.buffers),
		Textures: len(a.textures),
		Shaders:  len(a.shaders),
	}
	for _, b := range a.buffers {
		s.BufferBytes += b.size
	}
	return s
}

// Close destroys every resource still tracked by the allocator. Further
// Create calls return ErrClosed. The device and queue are not released;
// they belong to the caller. Close is idempotent.
func (a *Allocator) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	buffers, textures, shaders := a.buffers, a.textures, a.shaders
	a.buffers = make(map[gpucore.BufferID]*Buffer)
	a.textures = make(map[gpucore.TextureID]*Texture)
	a.shaders = make(map[gpucore.ShaderModuleID]*Shader)
	a.mu.Unlock()

	for _, s := range shaders {
		a.device.DestroyShaderModule(s.Raw())
	}
	for _, t := range textures {
		a.device.DestroyTexture(t.Raw())
	}
	for _, b := range buffers {
		a.device.DestroyBuffer(b.Raw())
	}

	a.log().Info("native: allocator closed",
		"buffers", len(buffers), "textures", len(textures), "shaders", len(shaders))
}

// alignUp rounds n up to a multiple of align, which must be a power of two.
func alignUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}
