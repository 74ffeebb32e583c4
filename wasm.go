package wasmhost

// Memory represents the guest's WASM linear memory
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of WASM linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates scratch memory in WASM linear memory. The bridge uses
// it only for the guest-side half of string marshalling; every allocation is
// freed before the marshalling call returns.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr, size uint32)
}
