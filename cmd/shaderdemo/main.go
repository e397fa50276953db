//go:build !js

// Command shaderdemo opens a window and draws a full-screen shader.
//
// Usage:
//
//	shaderdemo [flags]
//
// Examples:
//
//	shaderdemo                                   # animated variant, best backend
//	shaderdemo -variant triangle                 # static triangle
//	shaderdemo -config demo.toml -width 1280     # file values, flags win
//	shaderdemo -backend native -frames 60 -snapshot frame.png
//
// Escape or closing the window exits; Space pauses the animation.
// The log level comes from -log-level or the SHADERDEMO_LOG environment
// variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/backend"
	_ "github.com/gogpu/shaderdemo/backend/native"
	_ "github.com/gogpu/shaderdemo/backend/webgpu"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML or YAML config file")
		logLevel   = flag.String("log-level", os.Getenv("SHADERDEMO_LOG"), "log level: debug, info, warn or error (default: silent)")
		list       = flag.Bool("list", false, "list available backends and exit")
	)
	flags := shaderdemo.NewFlags(flag.CommandLine)
	flag.Usage = usage
	flag.Parse()

	if *list {
		for _, name := range backend.Available() {
			fmt.Println(name)
		}
		return
	}

	if *logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(strings.TrimSpace(*logLevel))); err != nil {
			log.Fatalf("Invalid log level %q: %v", *logLevel, err)
		}
		shaderdemo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	cfg := shaderdemo.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = shaderdemo.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg = flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	b, err := backend.Select(cfg.Backend)
	if err != nil {
		log.Fatalf("Failed to select backend: %v", err)
	}

	// Ctrl-C reaches the loop as a close request.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := b.Run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("%s backend: %v", b.Name(), err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shaderdemo [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shaderdemo -variant triangle                  Static triangle\n")
	fmt.Fprintf(os.Stderr, "  shaderdemo -config demo.toml -width 1280      Config file, flags win\n")
	fmt.Fprintf(os.Stderr, "  shaderdemo -backend native -frames 60 -snapshot frame.png\n")
}
