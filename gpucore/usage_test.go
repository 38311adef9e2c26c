// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import (
	"errors"
	"slices"
	"testing"
)

var allAccess = []Access{0, AccessRead, AccessWrite, AccessReadWrite}

var allBind = func() []Bind {
	var b []Bind
	for v := Bind(0); v <= BindAll; v++ {
		b = append(b, v)
	}
	return b
}()

func TestAccessConstants(t *testing.T) {
	if AccessRead != 0x1 || AccessWrite != 0x2 {
		t.Errorf("Read, Write = %#x, %#x, want 0x1, 0x2", AccessRead, AccessWrite)
	}
	if AccessReadWrite != AccessRead|AccessWrite {
		t.Errorf("ReadWrite = %#x, want Read|Write", AccessReadWrite)
	}
	if AccessReadWrite != 0x3 {
		t.Errorf("ReadWrite = %#x, want 0x3", AccessReadWrite)
	}
}

func TestBindConstants(t *testing.T) {
	want := []Bind{0x1, 0x2, 0x4, 0x8}
	got := []Bind{BindRenderTarget, BindDepthStencil, BindShaderResource, BindUnorderedAccess}
	if !slices.Equal(got, want) {
		t.Errorf("bind bits = %v, want %v", got, want)
	}
	if BindAll != 0xf {
		t.Errorf("BindAll = %#x, want 0xf", BindAll)
	}
}

func TestAccessUnionLaws(t *testing.T) {
	for _, a := range allAccess {
		if a|a != a {
			t.Errorf("%v|%v = %v, want idempotent", a, a, a|a)
		}
		for _, b := range allAccess {
			if a|b != b|a {
				t.Errorf("%v|%v not commutative", a, b)
			}
			for _, c := range allAccess {
				if (a|b)|c != a|(b|c) {
					t.Errorf("(%v|%v)|%v not associative", a, b, c)
				}
			}
			if !(a | b).Valid() {
				t.Errorf("%v|%v = %v is not valid", a, b, a|b)
			}
		}
	}
}

func TestBindUnionLaws(t *testing.T) {
	for _, a := range allBind {
		if a|a != a {
			t.Errorf("%v|%v = %v, want idempotent", a, a, a|a)
		}
		if !a.Valid() {
			t.Errorf("%v should be valid", a)
		}
		for _, b := range allBind {
			if a|b != b|a {
				t.Errorf("%v|%v not commutative", a, b)
			}
			if (a|b)&a != a {
				t.Errorf("(%v|%v)&%v = %v, want %v", a, b, a, (a|b)&a, a)
			}
			for _, c := range allBind {
				if (a|b)|c != a|(b|c) {
					t.Errorf("(%v|%v)|%v not associative", a, b, c)
				}
			}
		}
	}
}

func TestBindMembership(t *testing.T) {
	b := BindRenderTarget | BindShaderResource

	if !b.Contains(BindRenderTarget) {
		t.Error("Contains(RenderTarget) = false, want true")
	}
	if b.Contains(BindRenderTarget | BindDepthStencil) {
		t.Error("Contains(RenderTarget|DepthStencil) = true, want false")
	}
	if !b.Intersects(BindDepthStencil | BindShaderResource) {
		t.Error("Intersects(DepthStencil|ShaderResource) = false, want true")
	}
	if b.Intersects(BindUnorderedAccess) {
		t.Error("Intersects(UnorderedAccess) = true, want false")
	}
	if !Bind(0).Contains(0) {
		t.Error("empty set should contain the empty set")
	}
}

func TestFlagValidity(t *testing.T) {
	if Access(0x4).Valid() {
		t.Error("Access(0x4).Valid() = true, want false")
	}
	if Bind(0x10).Valid() {
		t.Error("Bind(0x10).Valid() = true, want false")
	}
}

func TestFlagString(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Access(0).String(), "None"},
		{AccessRead.String(), "Read"},
		{AccessReadWrite.String(), "Read|Write"},
		{Access(0x6).String(), "Write|0x4"},
		{Bind(0).String(), "None"},
		{(BindRenderTarget | BindUnorderedAccess).String(), "RenderTarget|UnorderedAccess"},
		{BindAll.String(), "RenderTarget|DepthStencil|ShaderResource|UnorderedAccess"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestUsageVariants(t *testing.T) {
	tests := []struct {
		usage      Usage
		kind       UsageKind
		access     Access
		hasAccess  bool
		wantString string
	}{
		{GPUOnly(), KindGPUOnly, 0, false, "GPUOnly"},
		{Immutable(), KindImmutable, 0, false, "Immutable"},
		{Dynamic(), KindDynamic, 0, false, "Dynamic"},
		{Persistent(AccessRead), KindPersistent, AccessRead, true, "Persistent(Read)"},
		{Persistent(AccessReadWrite), KindPersistent, AccessReadWrite, true, "Persistent(Read|Write)"},
		{CPUOnly(AccessWrite), KindCPUOnly, AccessWrite, true, "CPUOnly(Write)"},
	}
	for _, tt := range tests {
		t.Run(tt.wantString, func(t *testing.T) {
			if got := tt.usage.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
			a, ok := tt.usage.Access()
			if ok != tt.hasAccess || a != tt.access {
				t.Errorf("Access() = %v, %v, want %v, %v", a, ok, tt.access, tt.hasAccess)
			}
			if got := tt.usage.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if err := tt.usage.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestUsagePayloadRoundTrip(t *testing.T) {
	for _, a := range []Access{AccessRead, AccessWrite, AccessReadWrite} {
		for _, mk := range []func(Access) Usage{Persistent, CPUOnly} {
			u := mk(a)
			got, ok := u.Access()
			if !ok || got != a {
				t.Errorf("%v.Access() = %v, %v, want %v, true", u, got, ok, a)
			}
			if u != mk(a) {
				t.Errorf("%v != %v", u, mk(a))
			}
		}
	}
	if Persistent(AccessRead) == CPUOnly(AccessRead) {
		t.Error("Persistent(Read) == CPUOnly(Read), want distinct")
	}
	if Persistent(AccessRead) == Persistent(AccessWrite) {
		t.Error("Persistent(Read) == Persistent(Write), want distinct")
	}
}

func TestUsageZeroValue(t *testing.T) {
	var u Usage
	if u != GPUOnly() {
		t.Errorf("zero Usage = %v, want GPUOnly", u)
	}
}

func TestUsageValidate(t *testing.T) {
	for _, u := range []Usage{
		Persistent(0),
		CPUOnly(0),
		CPUOnly(Access(0x4)),
		Persistent(AccessRead | 0x8),
	} {
		if err := u.Validate(); !errors.Is(err, ErrInvalidAccess) {
			t.Errorf("%v.Validate() = %v, want ErrInvalidAccess", u, err)
		}
	}
	if err := (Usage{kind: 9}).Validate(); err == nil {
		t.Error("Validate() on unknown kind = nil, want error")
	}
}

func TestUsageOrdering(t *testing.T) {
	want := []Usage{
		GPUOnly(),
		Immutable(),
		Dynamic(),
		Persistent(AccessRead),
		Persistent(AccessWrite),
		Persistent(AccessReadWrite),
		CPUOnly(AccessRead),
		CPUOnly(AccessReadWrite),
	}
	got := slices.Clone(want)
	slices.Reverse(got)
	slices.SortFunc(got, Usage.Compare)

	if !slices.Equal(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
	for i := range want {
		if c := want[i].Compare(want[i]); c != 0 {
			t.Errorf("%v.Compare(self) = %d, want 0", want[i], c)
		}
	}
}

func TestUsageAsMapKey(t *testing.T) {
	m := map[Usage]string{
		GPUOnly():               "render target",
		CPUOnly(AccessWrite):    "upload",
		CPUOnly(AccessRead):     "readback",
		Persistent(AccessWrite): "ring",
	}
	if got := m[CPUOnly(AccessWrite)]; got != "upload" {
		t.Errorf("m[CPUOnly(Write)] = %q, want upload", got)
	}
	if _, ok := m[CPUOnly(AccessReadWrite)]; ok {
		t.Error("m[CPUOnly(ReadWrite)] present, want absent")
	}
}

func TestUsageKindString(t *testing.T) {
	if got := UsageKind(42).String(); got != "UsageKind(42)" {
		t.Errorf("String() = %q, want UsageKind(42)", got)
	}
}
