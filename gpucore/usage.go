// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAccess is returned by [Usage.Validate] when a usage that carries
// CPU access flags holds an empty or out-of-range value.
var ErrInvalidAccess = errors.New("gpucore: invalid access flags")

// Access is a bitmask of CPU-side access to resource memory.
// Values are built by combining the named constants with bitwise OR.
type Access uint8

// Access flags.
const (
	// AccessRead allows the CPU to read resource memory.
	AccessRead Access = 1 << 0

	// AccessWrite allows the CPU to write resource memory.
	AccessWrite Access = 1 << 1

	// AccessReadWrite is full CPU access.
	AccessReadWrite = AccessRead | AccessWrite
)

// Contains reports whether all bits of other are set in a.
func (a Access) Contains(other Access) bool { return a&other == other }

// Valid reports whether a has no bits outside [AccessReadWrite].
func (a Access) Valid() bool { return a&^AccessReadWrite == 0 }

// String returns a human-readable form such as "Read|Write".
func (a Access) String() string {
	return flagString(uint8(a), accessNames[:])
}

var accessNames = [...]string{"Read", "Write"}

// Bind is a bitmask of pipeline stages a resource may be attached to.
// Every subset, including the empty one, is valid.
type Bind uint8

// Bind flags.
const (
	// BindRenderTarget allows the resource to be rendered into.
	BindRenderTarget Bind = 1 << iota

	// BindDepthStencil allows the resource to serve as a depth/stencil target.
	BindDepthStencil

	// BindShaderResource allows the resource to be read by shaders.
	BindShaderResource

	// BindUnorderedAccess allows the resource to be written by shaders.
	BindUnorderedAccess

	// BindAll is the union of every bind flag.
	BindAll Bind = 1<<iota - 1
)

// Contains reports whether all bits of other are set in b.
func (b Bind) Contains(other Bind) bool { return b&other == other }

// Intersects reports whether b and other share at least one bit.
func (b Bind) Intersects(other Bind) bool { return b&other != 0 }

// Valid reports whether b has no bits outside [BindAll].
func (b Bind) Valid() bool { return b&^BindAll == 0 }

// String returns a human-readable form such as "RenderTarget|ShaderResource".
func (b Bind) String() string {
	return flagString(uint8(b), bindNames[:])
}

var bindNames = [...]string{"RenderTarget", "DepthStencil", "ShaderResource", "UnorderedAccess"}

// flagString joins the names of the set bits of v, appending any
// unnamed remainder in hex. The empty set is "None".
func flagString(v uint8, names []string) string {
	if v == 0 {
		return "None"
	}
	var parts []string
	for i, name := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, name)
			v &^= 1 << i
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", v))
	}
	return strings.Join(parts, "|")
}

// UsageKind identifies the variant of a [Usage].
type UsageKind uint8

// Usage kinds, in their total order.
const (
	// KindGPUOnly: GPU read and write, CPU may only request a copy.
	// Optimal for render targets.
	KindGPUOnly UsageKind = iota

	// KindImmutable: GPU read, CPU has no access after the initial load.
	KindImmutable

	// KindDynamic: GPU read, CPU write for frequent updates.
	KindDynamic

	// KindPersistent: GPU read and write, CPU access as specified.
	KindPersistent

	// KindCPUOnly: GPU copy only, CPU access as specified.
	// Used for staging memory copied to and from GPU resources.
	KindCPUOnly
)

var kindNames = [...]string{"GPUOnly", "Immutable", "Dynamic", "Persistent", "CPUOnly"}

// String returns the variant name.
func (k UsageKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("UsageKind(%d)", uint8(k))
}

// Usage is a hint as to how resource memory will be accessed.
//
// The hints are implementation specific: different backends on different
// hardware handle them differently. Only KindPersistent and KindCPUOnly carry
// explicit CPU access flags; the others imply their CPU access and expose
// none.
//
// Usage is comparable and can be used as a map key. The zero value is
// GPUOnly.
type Usage struct {
	kind   UsageKind
	access Access
}

// GPUOnly returns the GPU read/write, CPU copy usage.
func GPUOnly() Usage { return Usage{kind: KindGPUOnly} }

// Immutable returns the GPU read-only usage with no CPU access after
// initial load.
func Immutable() Usage { return Usage{kind: KindImmutable} }

// Dynamic returns the GPU read, CPU write usage.
func Dynamic() Usage { return Usage{kind: KindDynamic} }

// Persistent returns the GPU read/write usage with the given CPU access.
func Persistent(access Access) Usage { return Usage{kind: KindPersistent, access: access} }

// CPUOnly returns the staging usage with the given CPU access.
func CPUOnly(access Access) Usage { return Usage{kind: KindCPUOnly, access: access} }

// Kind returns the variant of u.
func (u Usage) Kind() UsageKind { return u.kind }

// Access returns the explicit CPU access of u. The boolean is false for
// variants that carry no access flags.
func (u Usage) Access() (Access, bool) {
	if !u.kind.hasAccess() {
		return 0, false
	}
	return u.access, true
}

func (k UsageKind) hasAccess() bool {
	return k == KindPersistent || k == KindCPUOnly
}

// Validate reports whether the access flags of u are meaningful.
// Variants without access flags are always valid.
func (u Usage) Validate() error {
	if int(u.kind) >= len(kindNames) {
		return fmt.Errorf("gpucore: unknown usage kind %d", uint8(u.kind))
	}
	if !u.kind.hasAccess() {
		return nil
	}
	if u.access == 0 || !u.access.Valid() {
		return fmt.Errorf("%w: %v(%v)", ErrInvalidAccess, u.kind, u.access)
	}
	return nil
}

// Compare orders usages by variant, then by access flags.
// It returns -1, 0 or +1 and can be passed to slices.SortFunc.
func (u Usage) Compare(v Usage) int {
	if c := cmp.Compare(u.kind, v.kind); c != 0 {
		return c
	}
	return cmp.Compare(u.access, v.access)
}

// String returns a form such as "Dynamic" or "CPUOnly(Read|Write)".
func (u Usage) String() string {
	if a, ok := u.Access(); ok {
		return u.kind.String() + "(" + a.String() + ")"
	}
	return u.kind.String()
}
