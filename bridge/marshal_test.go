package bridge

import (
	"context"
	stderrors "errors"
	"testing"

	hosterrors "github.com/skifflang/wasm-host/errors"
)

func TestMarshal_RoundTrip(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	for _, s := range []string{"", "hello", "--flag", "héllo wörld", "line\twith\ttabs"} {
		ref := mkString(t, b, s)
		if got := stringAt(t, b, ref); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestToHost_Length(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	ref := mkString(t, b, "hello")
	hb, err := b.ToHost(context.Background(), ref)
	if err != nil {
		t.Fatalf("ToHost: %v", err)
	}
	defer hb.Release()

	if hb.Len() != 5 {
		t.Errorf("Len() = %d, want 5", hb.Len())
	}
	if len(hb.Bytes()) != 5 {
		t.Errorf("len(Bytes()) = %d, want 5", len(hb.Bytes()))
	}
}

func TestToHost_UnknownRef(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	if _, err := b.ToHost(context.Background(), Ref(0xDEAD)); err == nil {
		t.Fatal("ToHost on unknown ref should fail")
	}
}

func TestToHost_InputNotMutated(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	ref := mkString(t, b, "abc")
	hb, err := b.ToHost(context.Background(), ref)
	if err != nil {
		t.Fatalf("ToHost: %v", err)
	}
	hb.Bytes()[0] = 'Z' // host copy, not the runtime string
	hb.Release()

	if got := stringAt(t, b, ref); got != "abc" {
		t.Errorf("runtime string = %q after host-copy mutation, want %q", got, "abc")
	}
}

func TestFromHost_FreesScratchOnSuccess(t *testing.T) {
	b, p, _, _ := newTestBridge(t, "")

	before := p.alloc.frees
	mkString(t, b, "hello")
	// One free for the scratch buffer; the string's own storage stays live.
	if got := p.alloc.frees - before; got != 1 {
		t.Errorf("frees = %d, want 1", got)
	}
}

func TestFromHost_FreesScratchOnCreateFailure(t *testing.T) {
	b, p, _, _ := newTestBridge(t, "")
	p.failCreate = stderrors.New("guest oom")

	before := p.alloc.frees
	if _, err := b.FromHost(context.Background(), []byte("x")); err == nil {
		t.Fatal("FromHost should fail when string construction fails")
	}
	if got := p.alloc.frees - before; got != 1 {
		t.Errorf("frees = %d, want 1", got)
	}
}

func TestFromHost_AllocationFailureIsStructured(t *testing.T) {
	b, p, _, _ := newTestBridge(t, "")
	p.alloc.next = p.alloc.limit // exhausted

	_, err := b.FromHost(context.Background(), []byte("x"))
	var he *hosterrors.Error
	if !stderrors.As(err, &he) {
		t.Fatalf("error %T, want *errors.Error", err)
	}
	if he.Kind != hosterrors.KindAllocation {
		t.Errorf("kind = %s, want %s", he.Kind, hosterrors.KindAllocation)
	}
}

func TestFromHost_EmptyString(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	ref := mkString(t, b, "")
	if got := stringAt(t, b, ref); got != "" {
		t.Errorf("empty round trip = %q", got)
	}
}
