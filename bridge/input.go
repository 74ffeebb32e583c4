package bridge

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/skifflang/wasm-host/errors"
)

// ReadLine reads one line from standard input into the line buffer, stripping
// the line terminator, and returns the byte count. The previous contents of
// the buffer are fully replaced. On end of stream or a read fault it raises
// the program's end-of-file exception instead of returning; a read that hits
// EOF after consuming bytes still counts as a full line.
func (b *Bridge) ReadLine(ctx context.Context) int {
	data, err := b.stdin.ReadBytes('\n')
	if err != nil && len(data) == 0 {
		b.log.Debug("line read fault", zap.Error(errors.EndOfStream(err)))
		b.raiseEndOfFile(ctx)
	}
	// Only a "\r\n" pair is a terminator. A bare trailing '\r' on a final
	// unterminated line is line data and stays in the buffer.
	if n := len(data); n > 0 && data[n-1] == '\n' {
		data = data[:n-1]
		if n := len(data); n > 0 && data[n-1] == '\r' {
			data = data[:n-1]
		}
	}
	b.line = append(b.line[:0], data...)
	return len(b.line)
}

// LineByte returns byte i of the line buffer. It is only defined for
// 0 <= i < the count returned by the last ReadLine on this bridge.
func (b *Bridge) LineByte(i uint32) byte {
	return b.line[i]
}

// raiseEndOfFile reports a stream fault through the program's own exception
// convention. ThrowEndOfFile is expected to re-enter Raise and unwind; when
// the unwind surfaces as an error from the guest call instead, it is
// re-raised here so native callers see one consistent fault shape.
func (b *Bridge) raiseEndOfFile(ctx context.Context) {
	err := b.program.ThrowEndOfFile(ctx)

	var t *Thrown
	if stderrors.As(err, &t) {
		panic(t)
	}
	// The throw convention must not return normally.
	panic(&Thrown{Value: NilRef})
}
