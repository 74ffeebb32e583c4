package bridge

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

func TestBindHostModule(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	b, _, _, _ := newTestBridge(t, "")
	if err := BindHostModule(ctx, rt, b); err != nil {
		t.Fatalf("BindHostModule: %v", err)
	}

	// The host module name is taken; a second bind must fail.
	if err := BindHostModule(ctx, rt, b); err == nil {
		t.Fatal("second BindHostModule should fail")
	}
}
