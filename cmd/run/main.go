package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/skifflang/wasm-host/bridge"
	"github.com/skifflang/wasm-host/engine"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to compiled program wasm file")
		cliArgs     = flag.String("argv", "", "Program arguments (comma-separated)")
		stdin       = flag.String("stdin", "", "Stdin data (default: inherit process stdin)")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -wasm <file.wasm> [-argv a,b,c] [-stdin data]")
		fmt.Fprintln(os.Stderr, "       run -wasm <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*wasmFile, *cliArgs, *stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile, argvStr, stdinStr string) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	eng := engine.New(ctx, nil)
	defer eng.Close(ctx)

	opts := []bridge.Option{bridge.WithLogger(engine.Logger())}
	if stdinStr != "" {
		opts = append(opts, bridge.WithStdin(strings.NewReader(stdinStr)))
	}
	br := bridge.New(opts...)

	// Host functions must exist before the program module is instantiated.
	if err := bridge.BindHostModule(ctx, eng.Runtime(), br); err != nil {
		return fmt.Errorf("bind host module: %w", err)
	}

	mod, err := eng.Load(ctx, data)
	if err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	defer inst.Close(ctx)

	if err := br.BindInstance(inst); err != nil {
		return fmt.Errorf("bind program: %w", err)
	}

	args := []string{wasmFile}
	if argvStr != "" {
		args = append(args, strings.Split(argvStr, ",")...)
	}
	return br.Start(ctx, args)
}
