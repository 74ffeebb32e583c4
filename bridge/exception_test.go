package bridge

import (
	"strings"
	"testing"
)

func TestRaise_UnwindsWithValue(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		thrown, ok := r.(*Thrown)
		if !ok {
			t.Fatalf("recovered %T, want *Thrown", r)
		}
		if thrown.Value != Ref(42) {
			t.Errorf("thrown value = %#x, want 42", uint32(thrown.Value))
		}
	}()

	b.Raise(Ref(42))
	t.Fatal("Raise returned")
}

func TestSaveException_OverwritesPriorValue(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	b.SaveException(Ref(1))
	b.SaveException(Ref(2))
	if got := b.Exception(); got != Ref(2) {
		t.Errorf("Exception() = %#x, want 2", uint32(got))
	}
}

func TestException_ReadDoesNotClear(t *testing.T) {
	b, _, _, _ := newTestBridge(t, "")

	b.SaveException(Ref(7))
	if got := b.Exception(); got != Ref(7) {
		t.Fatalf("first Exception() = %#x, want 7", uint32(got))
	}
	if got := b.Exception(); got != Ref(7) {
		t.Errorf("second Exception() = %#x, want 7", uint32(got))
	}
}

func TestException_IsolatedPerBridge(t *testing.T) {
	b1, _, _, _ := newTestBridge(t, "")
	b2, _, _, _ := newTestBridge(t, "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		b2.SaveException(Ref(99))
	}()
	<-done

	b1.SaveException(Ref(5))
	if got := b1.Exception(); got != Ref(5) {
		t.Errorf("bridge 1 Exception() = %#x, want 5", uint32(got))
	}
	if got := b2.Exception(); got != Ref(99) {
		t.Errorf("bridge 2 Exception() = %#x, want 99", uint32(got))
	}
}

func TestThrown_Error(t *testing.T) {
	err := &Thrown{Value: Ref(0xBEEF)}
	if !strings.Contains(err.Error(), "0xbeef") {
		t.Errorf("Error() = %q, want ref in message", err.Error())
	}
}
