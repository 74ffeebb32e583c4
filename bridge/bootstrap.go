package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/skifflang/wasm-host/errors"
)

// Start captures the process arguments and transfers control to the program:
// it stores args (index 0 is the invocation path, hidden from the program),
// runs Initialize, then runs the entry point. It returns when the entry point
// returns; the arguments are never mutated afterward.
func (b *Bridge) Start(ctx context.Context, args []string) error {
	if b.program == nil {
		return errors.InvalidInput(errors.PhaseRun, "no program bound")
	}
	if b.started {
		return errors.InvalidInput(errors.PhaseRun, "bridge already started")
	}
	b.args = append([]string(nil), args...)
	b.started = true

	b.log.Debug("starting program", zap.Int("argc", len(b.args)))

	if err := b.program.Initialize(ctx); err != nil {
		return errors.Wrap(errors.PhaseRun, errors.KindInstantiation, err, "initialize")
	}
	if err := b.program.Main(ctx); err != nil {
		return errors.Wrap(errors.PhaseRun, errors.KindInvalidInput, err, "entry point")
	}
	return nil
}
