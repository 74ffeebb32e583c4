package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	wasmhost "github.com/skifflang/wasm-host"
	"github.com/skifflang/wasm-host/errors"
)

// Guest allocator export names. The Skiff toolchain emits "alloc"/"free";
// older toolchains used the libc names.
const (
	allocExport = "alloc"
	freeExport  = "free"
	legacyAlloc = "malloc"
	legacyFree  = "dealloc"
)

// Config holds engine configuration
type Config struct {
	// MemoryLimitPages caps guest linear memory (64 KiB pages). Zero means
	// the wazero default.
	MemoryLimitPages uint32
}

// Engine wraps a wazero runtime that compiles and instantiates Skiff programs.
type Engine struct {
	runtime wazero.Runtime
}

// New creates a wazero-based engine
func New(ctx context.Context, cfg *Config) *Engine {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Engine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}
}

// Runtime exposes the underlying wazero runtime for host-module registration.
func (e *Engine) Runtime() wazero.Runtime {
	return e.runtime
}

// Close releases all engine resources.
// All instances must be closed before calling this.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Load compiles a core WebAssembly module containing a Skiff program.
func (e *Engine) Load(ctx context.Context, wasmBytes []byte) (*Module, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}
	return &Module{
		runtime:  e.runtime,
		compiled: compiled,
	}, nil
}

// Module is a compiled Skiff program, not yet instantiated.
type Module struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
}

// Instantiate creates an Instance of the module. Host modules imported by the
// program must be registered with the runtime before this call.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	modConfig := wazero.NewModuleConfig().WithName("") // anonymous for parallel instantiation

	instance, err := m.runtime.InstantiateModule(ctx, m.compiled, modConfig)
	if err != nil {
		return nil, errors.Load("instantiate module", err)
	}

	inst := &Instance{
		instance:  instance,
		funcCache: make(map[string]api.Function),
	}

	// Memory() returns a typed non-nil interface even when the module
	// defines no memory; go by the export definitions instead.
	if len(instance.ExportedMemoryDefinitions()) > 0 {
		inst.memory = &Memory{mem: instance.Memory()}
	}

	allocFn := instance.ExportedFunction(allocExport)
	if allocFn == nil {
		allocFn = instance.ExportedFunction(legacyAlloc)
	}
	freeFn := instance.ExportedFunction(freeExport)
	if freeFn == nil {
		freeFn = instance.ExportedFunction(legacyFree)
	}
	inst.alloc = &guestAllocator{allocFn: allocFn, freeFn: freeFn}

	return inst, nil
}

// Instance is a running Skiff program instance. It is NOT safe for concurrent
// use; each instance belongs to a single native execution context.
type Instance struct {
	instance  api.Module
	memory    *Memory
	alloc     *guestAllocator
	funcCache map[string]api.Function
}

// Memory returns the instance's linear memory, or nil if the module exports none.
func (i *Instance) Memory() wasmhost.Memory {
	if i.memory == nil {
		return nil
	}
	return i.memory
}

// Allocator returns the instance's guest allocator. Alloc fails at call time
// if the module exports no allocator.
func (i *Instance) Allocator() wasmhost.Allocator {
	return i.alloc
}

// Call invokes an exported function by name with flat i32/i64 arguments.
func (i *Instance) Call(ctx context.Context, name string, args ...uint64) ([]uint64, error) {
	fn, ok := i.funcCache[name]
	if !ok {
		fn = i.instance.ExportedFunction(name)
		if fn == nil {
			return nil, errors.NotFound(errors.PhaseRun, name)
		}
		i.funcCache[name] = fn
	}
	results, err := fn.Call(ctx, args...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRun, errors.KindInvalidInput, err, "call "+name)
	}
	return results, nil
}

// HasExport reports whether the module exports a function by that name.
func (i *Instance) HasExport(name string) bool {
	return i.instance.ExportedFunction(name) != nil
}

func (i *Instance) Close(ctx context.Context) error {
	var firstErr error
	if i.instance != nil {
		if err := i.instance.Close(ctx); err != nil {
			firstErr = err
		}
		i.instance = nil
	}
	// Clear references to help GC
	i.funcCache = nil
	i.memory = nil
	i.alloc = nil
	return firstErr
}

// guestAllocator implements wasmhost.Allocator using guest alloc/free exports
type guestAllocator struct {
	allocFn    api.Function
	freeFn     api.Function
	stackBuf   [2]uint64
	stackMutex sync.Mutex
}

func (a *guestAllocator) Alloc(size uint32) (uint32, error) {
	if a.allocFn == nil {
		return 0, errors.NotFound(errors.PhaseMarshal, allocExport)
	}

	a.stackMutex.Lock()
	defer a.stackMutex.Unlock()

	a.stackBuf[0] = uint64(size)
	if err := a.allocFn.CallWithStack(context.Background(), a.stackBuf[:1]); err != nil {
		return 0, errors.AllocationFailed(errors.PhaseMarshal, size, err)
	}
	return uint32(a.stackBuf[0]), nil
}

func (a *guestAllocator) Free(ptr, size uint32) {
	if a.freeFn == nil || ptr == 0 {
		return
	}

	a.stackMutex.Lock()
	defer a.stackMutex.Unlock()

	a.stackBuf[0] = uint64(ptr)
	a.stackBuf[1] = uint64(size)
	if err := a.freeFn.CallWithStack(context.Background(), a.stackBuf[:2]); err != nil {
		Logger().Warn("Free: guest free export failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

// Memory wraps wazero memory to implement wasmhost.Memory
type Memory struct {
	mem api.Memory
}

func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseRun, offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	ok := m.mem.Write(offset, data)
	if !ok {
		return errors.OutOfBounds(errors.PhaseRun, offset, uint32(len(data)))
	}
	return nil
}

// Size returns the current linear memory size in bytes.
func (m *Memory) Size() uint32 {
	return m.mem.Size()
}
