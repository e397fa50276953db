// Command shaderc compiles the demo shaders from WGSL to SPIR-V.
//
// Usage:
//
//	shaderc [options] [variant...]
//
// Each variant produces <variant>.vert.spv and <variant>.frag.spv, the
// blobs the native backend loads from its shader directory. Without
// arguments every variant is compiled.
//
// Examples:
//
//	shaderc -o spv                 # all variants into ./spv
//	shaderc -o spv animated        # one variant
//	shaderc -src wgsl -o spv       # WGSL read from ./wgsl instead of the embedded sources
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/naga"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/shader"
)

var (
	outDir   = flag.String("o", ".", "output directory")
	srcDir   = flag.String("src", "", "directory of <variant>.<stage>.wgsl sources (default: embedded)")
	debug    = flag.Bool("debug", false, "include debug info")
	validate = flag.Bool("validate", true, "validate IR")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	variants := []shaderdemo.Variant{shaderdemo.VariantTriangle, shaderdemo.VariantAnimated}
	if flag.NArg() > 0 {
		variants = variants[:0]
		for _, arg := range flag.Args() {
			v, err := shaderdemo.ParseVariant(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			variants = append(variants, v)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	opts := compileOptions(*debug, *validate)
	for _, v := range variants {
		for _, s := range shader.Stages {
			if err := compile(v, s, opts, *srcDir, *outDir); err != nil {
				fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

// compileOptions keeps naga's target SPIR-V version; a zero version word
// is rejected by Vulkan drivers.
func compileOptions(debug, validate bool) naga.CompileOptions {
	opts := naga.DefaultOptions()
	opts.Debug = debug
	opts.Validate = validate
	return opts
}

func compile(v shaderdemo.Variant, s shader.Stage, opts naga.CompileOptions, srcDir, outDir string) error {
	var (
		blob []byte
		err  error
		from = "embedded " + v.String() + "." + s.String() + ".wgsl"
	)
	if srcDir != "" {
		from = filepath.Join(srcDir, v.String()+"."+s.String()+".wgsl")
		var src []byte
		if src, err = os.ReadFile(from); err != nil {
			return err
		}
		blob, err = naga.CompileWithOptions(string(src), opts)
	} else {
		blob, err = shader.CompileStage(v, s, opts)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", from, err)
	}
	if _, err := shader.Decode(blob); err != nil {
		return fmt.Errorf("%s: %w", from, err)
	}

	out := filepath.Join(outDir, shader.FileName(v, s))
	if err := os.WriteFile(out, blob, 0o644); err != nil {
		return err
	}
	fmt.Printf("Compiled %s to %s (%d bytes)\n", from, out, len(blob))
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shaderc [options] [variant...]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shaderc -o spv              Compile all variants into spv/\n")
	fmt.Fprintf(os.Stderr, "  shaderc -o spv triangle     Compile one variant\n")
}
