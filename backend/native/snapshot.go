// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedImageFormat is returned for snapshot paths whose extension
// names no known encoder.
var ErrUnsupportedImageFormat = errors.New("native: unsupported snapshot format")

// Scale resizes img to width x height with Catmull-Rom filtering.
// It returns img unchanged when the size already matches or either
// dimension is zero.
func Scale(img image.Image, width, height uint32) image.Image {
	b := img.Bounds()
	if width == 0 || height == 0 || (b.Dx() == int(width) && b.Dy() == int(height)) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Encode writes img to w in the format named by ext (".png", ".bmp",
// ".tif", ".tiff", ".jpg" or ".jpeg").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
}

// WriteSnapshot scales img to width x height (when both are non-zero) and
// saves it to path, choosing the encoder from the extension.
func WriteSnapshot(path string, img image.Image, width, height uint32) (err error) {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".bmp", ".tif", ".tiff", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("native: create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("native: close snapshot: %w", cerr)
		}
	}()

	if err := Encode(f, Scale(img, width, height), ext); err != nil {
		return fmt.Errorf("native: encode snapshot: %w", err)
	}
	return nil
}
