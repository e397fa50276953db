package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/shader"
)

func TestCompileOptionsKeepVersion(t *testing.T) {
	for _, debug := range []bool{false, true} {
		opts := compileOptions(debug, true)
		if opts.SPIRVVersion.Major != 1 {
			t.Errorf("compileOptions(%v) SPIR-V version = %v, want 1.x", debug, opts.SPIRVVersion)
		}
		if opts.Debug != debug || !opts.Validate {
			t.Errorf("compileOptions(%v) = %+v", debug, opts)
		}
	}
}

func TestCompileRoundTrip(t *testing.T) {
	out := t.TempDir()
	opts := compileOptions(false, true)
	for _, v := range []shaderdemo.Variant{shaderdemo.VariantTriangle, shaderdemo.VariantAnimated} {
		for _, s := range shader.Stages {
			if err := compile(v, s, opts, "", out); err != nil {
				t.Fatalf("compile(%s, %s) error = %v", v, s, err)
			}
		}
		set, err := shader.Load(out, v)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", v, err)
		}
		if set.Vertex[1] < shader.MinVersion || set.Fragment[1] > shader.MaxVersion {
			t.Errorf("%s: version words %#08x/%#08x", v, set.Vertex[1], set.Fragment[1])
		}
	}
}

func TestCompileFromSource(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	v, s := shaderdemo.VariantTriangle, shader.Fragment
	wgsl, err := shader.WGSL(v, s)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, v.String()+"."+s.String()+".wgsl"), []byte(wgsl), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := compile(v, s, compileOptions(false, true), src, out); err != nil {
		t.Fatalf("compile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, shader.FileName(v, s))); err != nil {
		t.Errorf("blob not written: %v", err)
	}
	if err := compile(v, shader.Vertex, compileOptions(false, true), src, out); err == nil {
		t.Error("compile() with a missing source should fail")
	}
}
