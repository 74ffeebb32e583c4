package bridge

import "fmt"

// Thrown carries a runtime exception value out of the current native call
// stack. Raise panics with *Thrown; the compiled layer's recovery point (or
// the embedding program's recover) is the only place it stops.
type Thrown struct {
	Value Ref
}

func (t *Thrown) Error() string {
	return fmt.Sprintf("runtime exception (ref %#x)", uint32(t.Value))
}

// Raise transfers control out of the current native call frame carrying
// value, unwinding every native frame between the raise site and the nearest
// recovery point. It does not return.
func (b *Bridge) Raise(value Ref) {
	panic(&Thrown{Value: value})
}

// SaveException stores value in this bridge's exception slot, unconditionally
// overwriting any prior value.
func (b *Bridge) SaveException(value Ref) {
	b.exn = value
}

// Exception returns the saved exception value. Reading does not clear the
// slot; the compiled layer treats it as a single-slot mailbox and only relies
// on the value immediately after a corresponding SaveException.
func (b *Bridge) Exception() Ref {
	return b.exn
}
