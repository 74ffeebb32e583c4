package bridge

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/skifflang/wasm-host/engine"
	hosterrors "github.com/skifflang/wasm-host/errors"
)

// emptyModule is the smallest valid core wasm module: no exports, no memory.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func TestGuestProgram_ValidateMissingExports(t *testing.T) {
	ctx := context.Background()
	eng := engine.New(ctx, nil)
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

	err = NewGuestProgram(inst).Validate()
	var he *hosterrors.Error
	if !stderrors.As(err, &he) {
		t.Fatalf("Validate error %T, want *errors.Error", err)
	}
	if he.Kind != hosterrors.KindNotFound {
		t.Errorf("kind = %s, want %s", he.Kind, hosterrors.KindNotFound)
	}
}

func TestBindInstance_RejectsContractlessModule(t *testing.T) {
	ctx := context.Background()
	eng := engine.New(ctx, nil)
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

	b := New()
	if err := b.BindInstance(inst); err == nil {
		t.Fatal("BindInstance should reject a module without the contract exports")
	}
}
