// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
)

type fakeFrame struct {
	id        int
	discarded bool
}

func (f *fakeFrame) Discard() { f.discarded = true }

// fakeRenderer records every call and fails on demand.
type fakeRenderer struct {
	configs   []SurfaceConfig
	uploads   [][]byte
	draws     []uint32
	presented []*fakeFrame
	frames    []*fakeFrame
	destroyed int

	configureErr error
	acquireErr   error
	writeErr     error
	drawErr      error
	presentErr   error
}

func (r *fakeRenderer) Configure(c SurfaceConfig) error {
	if r.configureErr != nil {
		return r.configureErr
	}
	r.configs = append(r.configs, c)
	return nil
}

func (r *fakeRenderer) AcquireFrame() (Frame, error) {
	if r.acquireErr != nil {
		return nil, r.acquireErr
	}
	f := &fakeFrame{id: len(r.frames)}
	r.frames = append(r.frames, f)
	return f, nil
}

func (r *fakeRenderer) WriteUniforms(data []byte) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	r.uploads = append(r.uploads, append([]byte(nil), data...))
	return nil
}

func (r *fakeRenderer) Draw(f Frame, n uint32) error {
	if r.drawErr != nil {
		return r.drawErr
	}
	r.draws = append(r.draws, n)
	return nil
}

func (r *fakeRenderer) Present(f Frame) error {
	if r.presentErr != nil {
		return r.presentErr
	}
	r.presented = append(r.presented, f.(*fakeFrame))
	return nil
}

func (r *fakeRenderer) Destroy() { r.destroyed++ }

func uploadedTime(t *testing.T, b []byte) float32 {
	t.Helper()
	if len(b) != UniformsSize {
		t.Fatalf("uniform upload is %d bytes, want %d", len(b), UniformsSize)
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func newTestDemo(t *testing.T, v Variant) (*Demo, *fakeRenderer, *fakeTime) {
	t.Helper()
	r := &fakeRenderer{}
	ft := &fakeTime{t: time.Unix(0, 0)}
	d, err := New(DefaultConfig().WithVariant(v).WithSize(640, 480), r, WithTimeSource(ft.now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return d, r, ft
}

func TestNewConfiguresSurface(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantTriangle)
	if len(r.configs) != 1 {
		t.Fatalf("Configure called %d times, want 1", len(r.configs))
	}
	want := SurfaceConfig{Width: 640, Height: 480, Format: DefaultFormat, PresentMode: PresentModeMailbox}
	if r.configs[0] != want {
		t.Errorf("Configure(%+v), want %+v", r.configs[0], want)
	}
	if d.Surface() != want {
		t.Errorf("Surface() = %+v", d.Surface())
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(DefaultConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New(nil renderer) = %v, want ErrInvalidConfig", err)
	}
	if _, err := New(DefaultConfig().WithSize(0, 0), &fakeRenderer{}); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("New(0x0) = %v, want ErrInvalidDimensions", err)
	}
	r := &fakeRenderer{configureErr: errors.New("boom")}
	if _, err := New(DefaultConfig(), r); !errors.Is(err, ErrSurface) {
		t.Errorf("New(configure failure) = %v, want ErrSurface", err)
	}
}

func TestResize(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantAnimated)

	if err := d.Resize(1024, 768); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if w, h := d.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %dx%d, want 1024x768", w, h)
	}
	if len(r.configs) != 2 {
		t.Fatalf("Configure called %d times, want 2", len(r.configs))
	}
	if c := r.configs[1]; c.Width != 1024 || c.Height != 768 {
		t.Errorf("reconfigured with %dx%d", c.Width, c.Height)
	}
	if u := d.Uniforms(); u.Resolution != [2]float32{1024, 768} {
		t.Errorf("resolution uniform = %v", u.Resolution)
	}
}

func TestResizeZeroSkipsRendering(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantAnimated)

	if err := d.Resize(0, 0); err != nil {
		t.Fatalf("Resize(0, 0) = %v", err)
	}
	if w, h := d.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %dx%d, want 0x0", w, h)
	}
	if len(r.configs) != 1 {
		t.Errorf("zero resize reconfigured the surface")
	}
	if d.Render() {
		t.Error("Render() on a zero-sized surface should not present")
	}
	if len(r.frames) != 0 {
		t.Error("Render() on a zero-sized surface acquired a frame")
	}
	if s := d.Stats(); s.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", s.Skipped)
	}

	if err := d.Resize(300, 200); err != nil {
		t.Fatal(err)
	}
	if !d.Render() {
		t.Error("Render() after restoring the size should present")
	}
}

func TestResizeFailure(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantTriangle)
	r.configureErr = errors.New("lost")
	if err := d.Resize(10, 10); !errors.Is(err, ErrSurface) {
		t.Errorf("Resize() = %v, want ErrSurface", err)
	}
}

func TestRenderTriangle(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantTriangle)

	for i := 0; i < 3; i++ {
		if !d.Render() {
			t.Fatalf("Render() #%d did not present", i)
		}
	}
	if len(r.uploads) != 0 {
		t.Errorf("triangle variant uploaded %d uniform blocks, want 0", len(r.uploads))
	}
	for i, n := range r.draws {
		if n != 3 {
			t.Errorf("draw %d used %d vertices, want 3", i, n)
		}
	}
	if s := d.Stats(); s.Rendered != 3 || s.Dropped != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestRenderAnimatedTime(t *testing.T) {
	d, r, ft := newTestDemo(t, VariantAnimated)

	deltas := []time.Duration{16 * time.Millisecond, 17 * time.Millisecond, 500 * time.Millisecond}
	var sum time.Duration
	for _, dt := range deltas {
		ft.advance(dt)
		sum += dt
		if !d.Render() {
			t.Fatal("Render() did not present")
		}
		got := uploadedTime(t, r.uploads[len(r.uploads)-1])
		want := float32(sum.Seconds())
		if math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("uploaded time = %v, want %v", got, want)
		}
	}
	for i, n := range r.draws {
		if n != 6 {
			t.Errorf("draw %d used %d vertices, want 6", i, n)
		}
	}
}

func TestRenderAcquireFailure(t *testing.T) {
	d, r, ft := newTestDemo(t, VariantAnimated)
	r.acquireErr = fmt.Errorf("%w: timeout", ErrFrameUnavailable)

	ft.advance(time.Second)
	if d.Render() {
		t.Fatal("Render() presented without a frame")
	}
	if len(r.uploads) != 0 || len(r.draws) != 0 || len(r.presented) != 0 {
		t.Errorf("failed acquisition touched the pipeline: uploads=%d draws=%d presents=%d",
			len(r.uploads), len(r.draws), len(r.presented))
	}
	if d.Uniforms().Time != 0 {
		t.Errorf("failed acquisition advanced time to %v", d.Uniforms().Time)
	}
	if s := d.Stats(); s.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", s.Dropped)
	}

	// The skipped interval is carried into the next frame.
	r.acquireErr = nil
	ft.advance(time.Second)
	d.Render()
	if got := uploadedTime(t, r.uploads[0]); got != 2 {
		t.Errorf("time after recovery = %v, want 2", got)
	}
}

func TestRenderDropsFrameOnLaterFailures(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*fakeRenderer)
		discarded bool
	}{
		{"upload", func(r *fakeRenderer) { r.writeErr = errors.New("upload") }, true},
		{"draw", func(r *fakeRenderer) { r.drawErr = errors.New("draw") }, true},
		{"present", func(r *fakeRenderer) { r.presentErr = errors.New("present") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, r, _ := newTestDemo(t, VariantAnimated)
			tt.setup(r)
			if d.Render() {
				t.Fatal("Render() reported success")
			}
			if len(r.frames) != 1 {
				t.Fatalf("acquired %d frames, want 1", len(r.frames))
			}
			if r.frames[0].discarded != tt.discarded {
				t.Errorf("frame discarded = %v, want %v", r.frames[0].discarded, tt.discarded)
			}
			if s := d.Stats(); s.Dropped != 1 || s.Rendered != 0 {
				t.Errorf("Stats() = %+v", s)
			}
		})
	}
}

func TestTogglePause(t *testing.T) {
	d, r, ft := newTestDemo(t, VariantAnimated)

	ft.advance(time.Second)
	d.Render()
	d.TogglePause()
	if !d.Paused() {
		t.Fatal("Paused() = false after TogglePause")
	}

	ft.advance(5 * time.Second)
	d.Render()
	if got := uploadedTime(t, r.uploads[1]); got != 1 {
		t.Errorf("time while paused = %v, want 1", got)
	}

	d.TogglePause()
	ft.advance(time.Second)
	d.Render()
	if got := uploadedTime(t, r.uploads[2]); got != 2 {
		t.Errorf("time after resume = %v, want 2", got)
	}
}

func TestTogglePauseTriangleNoop(t *testing.T) {
	d, _, _ := newTestDemo(t, VariantTriangle)
	d.TogglePause()
	if d.Paused() {
		t.Error("triangle variant should not pause")
	}
}

func TestClose(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantTriangle)
	d.Close()
	d.Close()
	if r.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", r.destroyed)
	}
	if d.Render() {
		t.Error("Render() after Close should not present")
	}
}

func TestResizeAfterClose(t *testing.T) {
	d, r, _ := newTestDemo(t, VariantAnimated)
	d.Close()
	if err := d.Resize(100, 100); err != nil {
		t.Errorf("Resize() after Close = %v", err)
	}
	if len(r.configs) != 1 {
		t.Errorf("Configure called %d times, want 1", len(r.configs))
	}
	if w, h := d.Size(); w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d, want 100x100", w, h)
	}
}
