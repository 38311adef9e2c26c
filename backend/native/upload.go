//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gfxmem/gpucore"
	"github.com/gogpu/gputypes"
)

// Upload writes data into buf at the given byte offset through the queue.
//
// The elements are reinterpreted as bytes in place with gpucore.AsBytes, so
// the queue receives the host representation of data. The offset and byte
// length must be multiples of CopyAlignment and fit inside the buffer.
//
// The buffer's usage must allow CPU writes through the queue: GPUOnly (as a
// copy), Dynamic, and Persistent with AccessWrite always do; Immutable allows
// only the first upload, its initial load. CPUOnly staging memory is written
// by mapping, never by queue writes. Anything else returns ErrAccessDenied.
func Upload[T gpucore.Pod](a *Allocator, buf *Buffer, offset uint64, data []T) error {
	if buf == nil {
		return fmt.Errorf("upload: %w: nil buffer", ErrUnknownResource)
	}
	bytes := gpucore.AsBytes(data)
	size := uint64(len(bytes))
	if size == 0 {
		return nil
	}
	if offset%CopyAlignment != 0 || size%CopyAlignment != 0 {
		return fmt.Errorf("upload %q: %w: offset %d, size %d", buf.label, ErrUnaligned, offset, size)
	}
	if offset > buf.size || size > buf.size-offset {
		return fmt.Errorf("upload %q: %w: [%d, %d) of %d bytes", buf.label, ErrOutOfRange, offset, offset+size, buf.size)
	}

	// Holding the read lock keeps the buffer alive for the write.
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.buffers[buf.id] != buf {
		return fmt.Errorf("upload %q: %w", buf.label, ErrUnknownResource)
	}

	buf.mu.Lock()
	defer buf.mu.Unlock()
	if err := buf.checkWrite(); err != nil {
		return fmt.Errorf("upload %q: %w", buf.label, err)
	}
	a.write(buf.Raw(), offset, bytes)
	buf.loaded = true

	a.log().Debug("native: buffer upload", "id", buf.id, "offset", offset, "bytes", size)
	return nil
}

// checkWrite reports whether the CPU may write b through the queue now.
// Queue writes need CopyDst. The caller holds b.mu.
func (b *Buffer) checkWrite() error {
	if b.flags&gputypes.BufferUsageCopyDst == 0 {
		return fmt.Errorf("%w: %v buffer lacks CopyDst", ErrAccessDenied, b.usage)
	}
	switch b.usage.Kind() {
	case gpucore.KindGPUOnly, gpucore.KindDynamic:
		return nil
	case gpucore.KindImmutable:
		if b.loaded {
			return fmt.Errorf("%w: %v already loaded", ErrAccessDenied, b.usage)
		}
		return nil
	}
	if access, _ := b.usage.Access(); !access.Contains(gpucore.AccessWrite) {
		return fmt.Errorf("%w: %v", ErrAccessDenied, b.usage)
	}
	return nil
}
