package bridge

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/skifflang/wasm-host/errors"
)

// HostModuleName is the import module compiled Skiff programs link against.
const HostModuleName = "skiff_host"

// BindHostModule registers the bridge's entry points as host functions under
// HostModuleName. Must run before instantiating program modules that import
// them. Marshalling failures inside an entry point are fatal for the guest
// call, matching the layer's allocation-failure convention.
func BindHostModule(ctx context.Context, rt wazero.Runtime, b *Bridge) error {
	builder := rt.NewHostModuleBuilder(HostModuleName)

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, c uint32) {
			b.PrintChar(rune(c))
		}).
		Export("print_char")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, s uint32) {
			fatal(b.PrintRaw(ctx, Ref(s)))
		}).
		Export("print_raw")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, s uint32) {
			fatal(b.PrintString(ctx, Ref(s)))
		}).
		Export("print_string")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, s uint32) {
			fatal(b.PrintError(ctx, Ref(s)))
		}).
		Export("print_error")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context) uint32 {
			return uint32(b.ReadLine(ctx))
		}).
		Export("read_line_fill")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, i uint32) uint32 {
			return uint32(b.LineByte(i))
		}).
		Export("read_line_get")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context) uint32 {
			return b.ArgCount()
		}).
		Export("arg_count")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, n uint32) uint32 {
			s, err := b.ArgAt(ctx, n)
			fatal(err)
			return uint32(s)
		}).
		Export("arg_get")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, e uint32) {
			b.Raise(Ref(e))
		}).
		Export("throw")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, e uint32) {
			b.SaveException(Ref(e))
		}).
		Export("save_exn")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context) uint32 {
			return uint32(b.Exception())
		}).
		Export("get_exn")

	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.Registration(HostModuleName, err)
	}
	return nil
}

// fatal aborts the current guest call on errors with no recovery contract.
func fatal(err error) {
	if err != nil {
		panic(err)
	}
}
