// Package bridge implements the native support layer compiled Skiff programs
// call into: process bootstrap and argument access, character and line
// output, line-buffered standard-input reads, string marshalling between the
// program's string representation and host byte buffers, and an exception
// relay that carries an opaque runtime exception value across the host
// boundary.
//
// The layer consumes the compiled program only through the Program contract.
// Over wazero, GuestProgram resolves that contract to guest exports and
// BindHostModule exposes the bridge's entry points as host functions; in
// tests the contract is satisfied by in-process fakes.
//
// Error handling follows the layer's three-way taxonomy: stream faults on
// line reads propagate as runtime exceptions through Raise, marshalling
// allocation failures are fatal to the guest call, and out-of-range index
// access is the caller's obligation and is not checked.
package bridge
