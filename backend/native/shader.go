//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gfxmem/gpucore"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileShader compiles WGSL source to SPIR-V words.
//
// The compiled bytes are viewed as uint32 words without copying. SPIR-V is
// little-endian, which matches every host wgpu runs on.
func CompileShader(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	return spirvWords(spirvBytes)
}

// spirvWords views SPIR-V bytes as words. Output that is not word aligned
// in memory is copied into a fresh allocation first.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShaderSize, len(b))
	}
	if !gpucore.CanCast[uint32](b) {
		b = bytes.Clone(b)
	}
	return gpucore.CastSlice[uint32](b), nil
}

// Shader is a shader module created by an Allocator.
type Shader struct {
	handle gpucore.Typed[gpucore.ShaderKind, hal.ShaderModule]
	id     gpucore.ShaderModuleID
	label  string
	words  int
}

// Handle returns the typed handle around the HAL shader module.
func (s *Shader) Handle() gpucore.Typed[gpucore.ShaderKind, hal.ShaderModule] { return s.handle }

// Raw returns the HAL shader module.
func (s *Shader) Raw() hal.ShaderModule { return s.handle.Raw() }

// ID returns the allocator-assigned ID.
func (s *Shader) ID() gpucore.ShaderModuleID { return s.id }

// Label returns the debug label, including the allocator prefix.
func (s *Shader) Label() string { return s.label }

// Words returns the SPIR-V length in 32-bit words.
func (s *Shader) Words() int { return s.words }

// CreateShader compiles WGSL source and creates a shader module from it.
func (a *Allocator) CreateShader(label, wgsl string) (*Shader, error) {
	spirv, err := CompileShader(wgsl)
	if err != nil {
		return nil, fmt.Errorf("create shader %q: %w", label, err)
	}
	return a.CreateShaderSPIRV(label, spirv)
}

// CreateShaderSPIRV creates a shader module from SPIR-V words.
func (a *Allocator) CreateShaderSPIRV(label string, spirv []uint32) (*Shader, error) {
	if len(spirv) == 0 {
		return nil, fmt.Errorf("create shader %q: %w: empty SPIR-V", label, ErrInvalidSize)
	}

	label = a.label(label)
	module, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shader module %q: %w", label, err)
	}

	s := &Shader{
		handle: gpucore.NewTyped[gpucore.ShaderKind](module),
		id:     gpucore.ShaderModuleID(a.newID()),
		label:  label,
		words:  len(spirv),
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.device.DestroyShaderModule(module)
		return nil, ErrClosed
	}
	a.shaders[s.id] = s
	a.mu.Unlock()

	a.log().Debug("native: shader created", "id", s.id, "label", label, "words", len(spirv))
	return s, nil
}

// DestroyShader releases a shader module. Destroying a shader that is nil,
// already destroyed, or owned by another allocator has no effect.
func (a *Allocator) DestroyShader(s *Shader) {
	if s == nil {
		return
	}
	a.mu.Lock()
	owned := a.shaders[s.id] == s
	if owned {
		delete(a.shaders, s.id)
	}
	a.mu.Unlock()

	if owned {
		a.device.DestroyShaderModule(s.Raw())
		a.log().Debug("native: shader destroyed", "id", s.id, "label", s.label)
	}
}
