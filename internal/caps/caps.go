// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package caps negotiates surface settings against what a surface reports
// as supported.
package caps

// Choose returns want when supported contains it. Otherwise it returns the
// first supported value, which surfaces list in order of preference, and
// false. With nothing supported it returns want and false.
func Choose[T comparable](want T, supported []T) (T, bool) {
	for _, s := range supported {
		if s == want {
			return want, true
		}
	}
	if len(supported) == 0 {
		return want, false
	}
	return supported[0], false
}

// ChooseOr is like Choose but falls back to fallback instead of the first
// supported value. Present modes use it: FIFO is always available even
// when a surface lists it last.
func ChooseOr[T comparable](want, fallback T, supported []T) (T, bool) {
	for _, s := range supported {
		if s == want {
			return want, true
		}
	}
	return fallback, false
}

// Contains reports whether v is in supported.
func Contains[T comparable](supported []T, v T) bool {
	for _, s := range supported {
		if s == v {
			return true
		}
	}
	return false
}
