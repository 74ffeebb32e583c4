package bridge

import (
	"bufio"
	"io"
	"os"

	"go.uber.org/zap"

	wasmhost "github.com/skifflang/wasm-host"
)

// Bridge is one native execution context of the support layer. It owns the
// context's exception slot and line buffer; two Bridges never share that
// state. Create one Bridge per host-side execution context.
//
// A Bridge is not safe for concurrent use.
type Bridge struct {
	program Program
	mem     wasmhost.Memory
	alloc   wasmhost.Allocator

	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger

	args    []string
	started bool
	line    []byte
	exn     Ref
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithStdin sets the standard-input source.
func WithStdin(r io.Reader) Option {
	return func(b *Bridge) { b.stdin = bufio.NewReader(r) }
}

// WithStdout sets the standard-output sink.
func WithStdout(w io.Writer) Option {
	return func(b *Bridge) { b.stdout = w }
}

// WithStderr sets the error-stream sink.
func WithStderr(w io.Writer) Option {
	return func(b *Bridge) { b.stderr = w }
}

// WithLogger sets the bridge logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// New creates a Bridge wired to the process streams unless overridden.
// A Program must be bound with Bind before Start.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind attaches the compiled program and its memory model to the bridge.
// Must be called before Start and before any host function fires.
func (b *Bridge) Bind(p Program, mem wasmhost.Memory, alloc wasmhost.Allocator) {
	b.program = p
	b.mem = mem
	b.alloc = alloc
}
