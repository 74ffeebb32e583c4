package bridge

import "context"

// ArgCount returns the number of arguments visible to the program. The
// invocation path at index 0 is hidden, matching argv-without-argv[0]
// conventions.
func (b *Bridge) ArgCount() uint32 {
	if len(b.args) == 0 {
		return 0
	}
	return uint32(len(b.args) - 1)
}

// ArgAt marshals argument n into a new runtime string. n must be below
// ArgCount; the bounds are the caller's obligation and are not checked here.
func (b *Bridge) ArgAt(ctx context.Context, n uint32) (Ref, error) {
	return b.FromHost(ctx, []byte(b.args[n+1]))
}
