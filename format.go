// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"fmt"
	"strings"
)

// Format is the pixel format of the presentation surface.
type Format uint8

const (
	FormatBGRA8UnormSrgb Format = iota
	FormatBGRA8Unorm
	FormatRGBA8UnormSrgb
	FormatRGBA8Unorm
)

var formatNames = [...]string{
	FormatBGRA8UnormSrgb: "bgra8unorm-srgb",
	FormatBGRA8Unorm:     "bgra8unorm",
	FormatRGBA8UnormSrgb: "rgba8unorm-srgb",
	FormatRGBA8Unorm:     "rgba8unorm",
}

func (f Format) String() string { return enumString(formatNames[:], int(f), "Format") }

// ParseFormat parses a WebGPU style format name such as "bgra8unorm-srgb".
func ParseFormat(s string) (Format, error) {
	i, err := parseEnum(formatNames[:], s, "format")
	return Format(i), err
}

// BGR reports whether the blue channel is stored first.
func (f Format) BGR() bool { return f == FormatBGRA8UnormSrgb || f == FormatBGRA8Unorm }

func (f Format) MarshalText() ([]byte, error) { return marshalEnum(formatNames[:], int(f), "format") }

func (f *Format) UnmarshalText(b []byte) error {
	p, err := ParseFormat(string(b))
	if err == nil {
		*f = p
	}
	return err
}

// PresentMode controls how rendered frames are queued for display.
type PresentMode uint8

const (
	// PresentModeMailbox replaces the queued frame with the newest one.
	PresentModeMailbox PresentMode = iota
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo
	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate
)

var presentModeNames = [...]string{
	PresentModeMailbox:   "mailbox",
	PresentModeFifo:      "fifo",
	PresentModeImmediate: "immediate",
}

func (m PresentMode) String() string {
	return enumString(presentModeNames[:], int(m), "PresentMode")
}

// ParsePresentMode parses "mailbox", "fifo" or "immediate".
func ParsePresentMode(s string) (PresentMode, error) {
	i, err := parseEnum(presentModeNames[:], s, "present mode")
	return PresentMode(i), err
}

func (m PresentMode) MarshalText() ([]byte, error) {
	return marshalEnum(presentModeNames[:], int(m), "present mode")
}

func (m *PresentMode) UnmarshalText(b []byte) error {
	p, err := ParsePresentMode(string(b))
	if err == nil {
		*m = p
	}
	return err
}

// PowerPreference hints which adapter to pick when several are present.
type PowerPreference uint8

const (
	PowerPreferenceDefault PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

var powerPreferenceNames = [...]string{
	PowerPreferenceDefault:         "default",
	PowerPreferenceLowPower:        "low-power",
	PowerPreferenceHighPerformance: "high-performance",
}

func (p PowerPreference) String() string {
	return enumString(powerPreferenceNames[:], int(p), "PowerPreference")
}

// ParsePowerPreference parses "default", "low-power" or "high-performance".
func ParsePowerPreference(s string) (PowerPreference, error) {
	i, err := parseEnum(powerPreferenceNames[:], s, "power preference")
	return PowerPreference(i), err
}

func (p PowerPreference) MarshalText() ([]byte, error) {
	return marshalEnum(powerPreferenceNames[:], int(p), "power preference")
}

func (p *PowerPreference) UnmarshalText(b []byte) error {
	v, err := ParsePowerPreference(string(b))
	if err == nil {
		*p = v
	}
	return err
}

func enumString(names []string, i int, typ string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", typ, i)
}

func parseEnum(names []string, s, what string) (int, error) {
	s = strings.TrimSpace(s)
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, what, s)
}

func marshalEnum(names []string, i int, what string) ([]byte, error) {
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("%w: unknown %s %d", ErrInvalidConfig, what, i)
	}
	return []byte(names[i]), nil
}
