package bridge

import (
	"context"

	"github.com/skifflang/wasm-host/engine"
	"github.com/skifflang/wasm-host/errors"
)

// Guest export names forming the compiled-runtime contract.
const (
	exportInitialize     = "initialize"
	exportRun            = "run"
	exportStringByteSize = "string_byte_size"
	exportStringCreate   = "string_create"
	exportThrowEOF       = "throw_end_of_file"
)

// GuestProgram adapts a compiled program instance to the Program contract,
// resolving each operation to the corresponding guest export.
type GuestProgram struct {
	inst *engine.Instance
}

// NewGuestProgram wraps inst. Missing exports surface as not-found errors at
// call time, except through Validate.
func NewGuestProgram(inst *engine.Instance) *GuestProgram {
	return &GuestProgram{inst: inst}
}

// Validate checks that every contract export is present.
func (g *GuestProgram) Validate() error {
	for _, name := range []string{
		exportInitialize,
		exportRun,
		exportStringByteSize,
		exportStringCreate,
		exportThrowEOF,
	} {
		if !g.inst.HasExport(name) {
			return errors.NotFound(errors.PhaseBind, name)
		}
	}
	return nil
}

func (g *GuestProgram) Initialize(ctx context.Context) error {
	_, err := g.inst.Call(ctx, exportInitialize)
	return err
}

func (g *GuestProgram) Main(ctx context.Context) error {
	_, err := g.inst.Call(ctx, exportRun)
	return err
}

func (g *GuestProgram) StringByteSize(ctx context.Context, s Ref) (uint32, error) {
	results, err := g.inst.Call(ctx, exportStringByteSize, uint64(s))
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, errors.InvalidInput(errors.PhaseMarshal, exportStringByteSize+" returned no value")
	}
	return uint32(results[0]), nil
}

func (g *GuestProgram) StringCreate(ctx context.Context, ptr, size uint32) (Ref, error) {
	results, err := g.inst.Call(ctx, exportStringCreate, uint64(ptr), uint64(size))
	if err != nil {
		return NilRef, err
	}
	if len(results) == 0 {
		return NilRef, errors.InvalidInput(errors.PhaseMarshal, exportStringCreate+" returned no value")
	}
	return Ref(results[0]), nil
}

func (g *GuestProgram) ThrowEndOfFile(ctx context.Context) error {
	_, err := g.inst.Call(ctx, exportThrowEOF)
	return err
}

// BindInstance binds a guest program instance, its linear memory, and its
// allocator to the bridge in one step.
func (b *Bridge) BindInstance(inst *engine.Instance) error {
	g := NewGuestProgram(inst)
	if err := g.Validate(); err != nil {
		return err
	}
	if inst.Memory() == nil {
		return errors.NotFound(errors.PhaseBind, "memory")
	}
	b.Bind(g, inst.Memory(), inst.Allocator())
	return nil
}
