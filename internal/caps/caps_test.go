// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package caps

import "testing"

func TestChoose(t *testing.T) {
	tests := []struct {
		name      string
		want      string
		supported []string
		got       string
		ok        bool
	}{
		{"supported", "bgra8unorm-srgb", []string{"rgba8unorm", "bgra8unorm-srgb"}, "bgra8unorm-srgb", true},
		{"fallback to first", "bgra8unorm-srgb", []string{"rgba8unorm", "bgra8unorm"}, "rgba8unorm", false},
		{"nothing supported", "bgra8unorm", nil, "bgra8unorm", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Choose(tt.want, tt.supported)
			if got != tt.got || ok != tt.ok {
				t.Errorf("Choose() = (%q, %v), want (%q, %v)", got, ok, tt.got, tt.ok)
			}
		})
	}
}

func TestChooseOr(t *testing.T) {
	const (
		fifo = iota
		mailbox
		immediate
	)
	if got, ok := ChooseOr(mailbox, fifo, []int{immediate, mailbox, fifo}); got != mailbox || !ok {
		t.Errorf("ChooseOr(mailbox) = (%d, %v), want (mailbox, true)", got, ok)
	}
	if got, ok := ChooseOr(mailbox, fifo, []int{immediate, fifo}); got != fifo || ok {
		t.Errorf("ChooseOr(mailbox) without mailbox = (%d, %v), want (fifo, false)", got, ok)
	}
}

func TestContains(t *testing.T) {
	if !Contains([]int{1, 2, 3}, 2) {
		t.Error("Contains(2) = false")
	}
	if Contains([]int{1, 2, 3}, 4) {
		t.Error("Contains(4) = true")
	}
	if Contains[int](nil, 0) {
		t.Error("Contains on nil = true")
	}
}
