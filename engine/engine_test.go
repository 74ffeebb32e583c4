package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/skifflang/wasm-host/errors"
)

var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestLoad_RejectsGarbage(t *testing.T) {
	ctx := context.Background()
	eng := New(ctx, nil)
	defer eng.Close(ctx)

	_, err := eng.Load(ctx, []byte("not wasm"))
	var he *errors.Error
	if !stderrors.As(err, &he) {
		t.Fatalf("Load error %T, want *errors.Error", err)
	}
	if he.Phase != errors.PhaseLoad {
		t.Errorf("phase = %s, want %s", he.Phase, errors.PhaseLoad)
	}
}

func TestInstantiate_EmptyModule(t *testing.T) {
	ctx := context.Background()
	eng := New(ctx, nil)
	defer eng.Close(ctx)

	mod, err := eng.Load(ctx, emptyModule)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	defer inst.Close(ctx)

	if inst.Memory() != nil {
		t.Error("empty module should export no memory")
	}
	if inst.HasExport("run") {
		t.Error("empty module should export nothing")
	}
	if _, err := inst.Call(ctx, "run"); err == nil {
		t.Error("calling a missing export should fail")
	}
	if _, err := inst.Allocator().Alloc(8); err == nil {
		t.Error("Alloc without an allocator export should fail")
	}
}

func TestInstantiate_Twice(t *testing.T) {
	ctx := context.Background()
	eng := New(ctx, nil)
	defer eng.Close(ctx)

	mod, err := eng.Load(ctx, emptyModule)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("first Instantiate: %v", err)
	}
	defer a.Close(ctx)

	b, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("second Instantiate: %v", err)
	}
	defer b.Close(ctx)
}
