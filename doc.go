// Package wasmhost is the native support layer a compiled Skiff program links
// against to reach the host operating system.
//
// Skiff programs are compiled to core WebAssembly and run under wazero. The
// compiled code imports a small, flat set of host functions for character and
// line output, line-buffered standard-input reads, process-argument access,
// and for carrying a runtime-level exception value across the host boundary.
// Everything else (the program's entry point, its string and memory
// representation) stays on the guest side and is consumed only through the
// bridge.Program contract.
//
// # Architecture Overview
//
//	wasmhost/        Root package with Memory and Allocator interfaces
//	├── bridge/      The support layer itself: bootstrap, argument accessor,
//	│                exception relay, line input buffer, string marshalling,
//	│                output routines, and the wazero host-module binding
//	├── engine/      Low-level wazero integration: compile, instantiate,
//	│                linear-memory and guest-allocator adapters
//	├── errors/      Structured error types for debugging
//	└── cmd/run/     CLI runner for compiled Skiff programs
//
// # Quick Start
//
// Run a compiled program:
//
//	eng := engine.New(ctx, nil)
//	defer eng.Close(ctx)
//
//	br := bridge.New()
//	if err := bridge.BindHostModule(ctx, eng.Runtime(), br); err != nil {
//	    log.Fatal(err)
//	}
//
//	mod, err := eng.Load(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := mod.Instantiate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	if err := br.BindInstance(inst); err != nil {
//	    log.Fatal(err)
//	}
//	err = br.Start(ctx, os.Args)
//
// # Thread Safety
//
// A Bridge is a single native execution context: its exception slot and line
// buffer are private to it. Programs that create multiple host-side execution
// contexts create one Bridge per context; Bridges never share that state.
package wasmhost
