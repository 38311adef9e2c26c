//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTestAllocator returns an allocator on a recording noop device.
func newTestAllocator(t *testing.T, opts ...Option) (*Allocator, *recordingDevice) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	rec := &recordingDevice{Device: device}
	a, err := NewAllocator(rec, queue, opts...)
	if err != nil {
		cleanup()
		t.Fatalf("NewAllocator failed: %v", err)
	}
	t.Cleanup(func() {
		a.Close()
		cleanup()
	})
	return a, rec
}

// recordingDevice wraps a hal.Device and records resource descriptors.
type recordingDevice struct {
	hal.Device

	mu                sync.Mutex
	bufferDescs       []hal.BufferDescriptor
	textureDescs      []hal.TextureDescriptor
	shaderLabels      []string
	buffersDestroyed  int
	texturesDestroyed int
	shadersDestroyed  int
	failCreate        bool
}

var errDeviceFailure = errors.New("device failure")

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.mu.Lock()
	d.bufferDescs = append(d.bufferDescs, *desc)
	fail := d.failCreate
	d.mu.Unlock()
	if fail {
		return nil, errDeviceFailure
	}
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) DestroyBuffer(buffer hal.Buffer) {
	d.mu.Lock()
	d.buffersDestroyed++
	d.mu.Unlock()
	d.Device.DestroyBuffer(buffer)
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.mu.Lock()
	d.textureDescs = append(d.textureDescs, *desc)
	fail := d.failCreate
	d.mu.Unlock()
	if fail {
		return nil, errDeviceFailure
	}
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) DestroyTexture(texture hal.Texture) {
	d.mu.Lock()
	d.texturesDestroyed++
	d.mu.Unlock()
	d.Device.DestroyTexture(texture)
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	d.mu.Lock()
	d.shaderLabels = append(d.shaderLabels, desc.Label)
	fail := d.failCreate
	d.mu.Unlock()
	if fail {
		return nil, errDeviceFailure
	}
	return d.Device.CreateShaderModule(desc)
}

func (d *recordingDevice) DestroyShaderModule(module hal.ShaderModule) {
	d.mu.Lock()
	d.shadersDestroyed++
	d.mu.Unlock()
	d.Device.DestroyShaderModule(module)
}

func (d *recordingDevice) lastBuffer(t *testing.T) hal.BufferDescriptor {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.bufferDescs) == 0 {
		t.Fatal("no buffer descriptor recorded")
	}
	return d.bufferDescs[len(d.bufferDescs)-1]
}

func (d *recordingDevice) lastTexture(t *testing.T) hal.TextureDescriptor {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.textureDescs) == 0 {
		t.Fatal("no texture descriptor recorded")
	}
	return d.textureDescs[len(d.textureDescs)-1]
}

// write is one recorded queue upload.
type write struct {
	buf    hal.Buffer
	offset uint64
	data   []byte
}

// recordWrites replaces the queue upload path of a with a recorder.
func recordWrites(a *Allocator) *[]write {
	var writes []write
	a.write = func(buf hal.Buffer, offset uint64, data []byte) {
		writes = append(writes, write{buf: buf, offset: offset, data: append([]byte(nil), data...)})
	}
	return &writes
}
