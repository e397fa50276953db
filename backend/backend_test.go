// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/shaderdemo"
)

type stubBackend struct{ name string }

func (s stubBackend) Name() string                                 { return s.name }
func (s stubBackend) Run(context.Context, shaderdemo.Config) error { return nil }

func register(t *testing.T, name string, available bool) {
	t.Helper()
	Register(name, func() Backend {
		if !available {
			return nil
		}
		return stubBackend{name: name}
	})
	t.Cleanup(func() { Unregister(name) })
}

func TestRegisterGet(t *testing.T) {
	register(t, "test-a", true)

	if !IsRegistered("test-a") {
		t.Fatal("IsRegistered(test-a) = false")
	}
	b, err := Get("test-a")
	if err != nil {
		t.Fatalf("Get(test-a) error = %v", err)
	}
	if b.Name() != "test-a" {
		t.Errorf("Name() = %q, want %q", b.Name(), "test-a")
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("no-such-backend"); !errors.Is(err, shaderdemo.ErrBackendNotAvailable) {
		t.Errorf("Get(unknown) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestGetUnavailable(t *testing.T) {
	register(t, "test-off", false)
	if _, err := Get("test-off"); !errors.Is(err, shaderdemo.ErrBackendNotAvailable) {
		t.Errorf("Get(unavailable) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestUnregister(t *testing.T) {
	Register("test-tmp", func() Backend { return stubBackend{name: "test-tmp"} })
	Unregister("test-tmp")
	if IsRegistered("test-tmp") {
		t.Error("backend still registered after Unregister")
	}
}

func TestAvailableSorted(t *testing.T) {
	register(t, "test-z", true)
	register(t, "test-b", true)

	var got []string
	for _, name := range Available() {
		if name == "test-z" || name == "test-b" {
			got = append(got, name)
		}
	}
	if want := []string{"test-b", "test-z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Available() order = %v, want %v", got, want)
	}
}

// isolate clears the registry for the duration of a test.
func isolate(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func TestDefaultPriority(t *testing.T) {
	isolate(t)

	if _, err := Default(); !errors.Is(err, shaderdemo.ErrBackendNotAvailable) {
		t.Fatalf("Default() on empty registry error = %v", err)
	}

	register(t, "custom", true)
	if b, _ := Default(); b.Name() != "custom" {
		t.Errorf("Default() = %q, want fallback to custom", b.Name())
	}

	register(t, Native, true)
	if b, _ := Default(); b.Name() != Native {
		t.Errorf("Default() = %q, want %q", b.Name(), Native)
	}

	register(t, WebGPU, false)
	if b, _ := Default(); b.Name() != Native {
		t.Errorf("Default() with unavailable webgpu = %q, want %q", b.Name(), Native)
	}

	register(t, WebGPU, true)
	if b, _ := Default(); b.Name() != WebGPU {
		t.Errorf("Default() = %q, want %q", b.Name(), WebGPU)
	}
}

func TestSelect(t *testing.T) {
	isolate(t)
	register(t, Native, true)

	b, err := Select("")
	if err != nil || b.Name() != Native {
		t.Errorf("Select(\"\") = %v, %v", b, err)
	}
	if _, err := Select(WebGPU); !errors.Is(err, shaderdemo.ErrBackendNotAvailable) {
		t.Errorf("Select(webgpu) error = %v", err)
	}
}

func TestMustDefaultPanics(t *testing.T) {
	isolate(t)
	defer func() {
		if recover() == nil {
			t.Error("MustDefault() on empty registry did not panic")
		}
	}()
	MustDefault()
}
