package bridge

import "context"

// Ref is an opaque reference to a runtime-level value owned by the compiled
// program. In the wasm rendition it is a pointer into guest linear memory;
// the bridge never inspects it beyond the documented accessor contract.
type Ref uint32

// NilRef is the zero Ref.
const NilRef Ref = 0

// Program is the contract the compiled layer supplies to the support layer.
// The bridge consumes it for bootstrap (Initialize, Main), for string
// marshalling (StringByteSize, StringCreate), and for signaling end of
// stream during line reads (ThrowEndOfFile).
//
// Implementations over a wasm instance resolve these to guest exports; tests
// supply in-process fakes.
type Program interface {
	// Initialize sets up the program's internal state. Called exactly once,
	// after process arguments are captured and before Main.
	Initialize(ctx context.Context) error

	// Main transfers control to the program's entry point. It returns only
	// when the program is done.
	Main(ctx context.Context) error

	// StringByteSize returns the byte length of runtime string s.
	StringByteSize(ctx context.Context, s Ref) (uint32, error)

	// StringCreate constructs a new runtime string copying size bytes from
	// guest memory at ptr. Ownership of the result passes to the program's
	// memory model.
	StringCreate(ctx context.Context, ptr, size uint32) (Ref, error)

	// ThrowEndOfFile raises the program's end-of-stream exception. It is
	// expected to unwind through the bridge's Raise and never return.
	ThrowEndOfFile(ctx context.Context) error
}
