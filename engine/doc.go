// Package engine provides the low-level wazero integration: compiling and
// instantiating Skiff program modules, and adapting wazero linear memory and
// the guest's alloc/free exports to the wasmhost.Memory and wasmhost.Allocator
// interfaces consumed by the bridge.
package engine
