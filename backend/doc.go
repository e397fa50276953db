// Package backend provides the registry of demo backends.
//
// A backend owns the platform specific parts of a demo: its GPU API and
// the window whose events feed shaderdemo.Loop.
//
// # Registration
//
// Each backend package registers itself from init, so a program picks the
// set of backends it links by importing them:
//
//	import (
//		_ "github.com/gogpu/shaderdemo/backend/native"
//		_ "github.com/gogpu/shaderdemo/backend/webgpu"
//	)
//
// # Selection
//
// Select takes the name from Config.Backend; an empty name means Default,
// which prefers a window (webgpu) over offscreen rendering (native):
//
//	b, err := backend.Select(cfg.Backend)
//
// # Running
//
//	cfg := shaderdemo.DefaultConfig()
//	if err := b.Run(ctx, cfg); err != nil {
//		log.Fatal(err)
//	}
package backend
