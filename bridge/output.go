package bridge

import (
	"context"
	"io"
	"unicode/utf8"

	"go.uber.org/zap"
)

var lineTerminator = []byte{'\n'}

// PrintChar writes a single character to standard output. No marshalling is
// involved; write faults follow the host stream's own behavior.
func (b *Bridge) PrintChar(c rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], c)
	if _, err := b.stdout.Write(buf[:n]); err != nil {
		b.log.Debug("stdout write failed", zap.Error(err))
	}
}

// PrintRaw writes runtime string s verbatim to standard output, with no
// trailing newline.
func (b *Bridge) PrintRaw(ctx context.Context, s Ref) error {
	return b.printTo(ctx, b.stdout, s, false)
}

// PrintString writes s followed by one line terminator to standard output.
func (b *Bridge) PrintString(ctx context.Context, s Ref) error {
	return b.printTo(ctx, b.stdout, s, true)
}

// PrintError writes s followed by one line terminator to standard error.
func (b *Bridge) PrintError(ctx context.Context, s Ref) error {
	return b.printTo(ctx, b.stderr, s, true)
}

// printTo marshals s and writes it to w. The host buffer is released on every
// exit path. Marshalling failures are reported; write faults mirror the
// original stream semantics and are not.
func (b *Bridge) printTo(ctx context.Context, w io.Writer, s Ref, newline bool) error {
	hb, err := b.ToHost(ctx, s)
	if err != nil {
		return err
	}
	defer hb.Release()

	if _, err := w.Write(hb.Bytes()); err != nil {
		b.log.Debug("stream write failed", zap.Error(err))
		return nil
	}
	if newline {
		if _, err := w.Write(lineTerminator); err != nil {
			b.log.Debug("stream write failed", zap.Error(err))
		}
	}
	return nil
}
