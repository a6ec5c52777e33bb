// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memctx

// DefaultChunkCapacity is the default chunk size for new chains (64 KiB).
const DefaultChunkCapacity = 64 * KB

// Chain is a growable allocator composed of fixed-capacity contexts. When
// the active chunk cannot serve an allocation, the chain appends a new chunk
// instead of failing, so Malloc never reports ErrCapacityExceeded for want
// of space. Forget is scoped to the active chunk. Not goroutine-safe.
type Chain struct {
	chunks   []*Context
	cur      int
	chunkCap int
	op       options
}

// NewChain creates a chain whose chunks hold chunkCapacity bytes each.
// If chunkCapacity <= 0, DefaultChunkCapacity is used. An allocation larger
// than the chunk capacity gets a dedicated chunk of its own size.
func NewChain(chunkCapacity int, opts ...Option) *Chain {
	if chunkCapacity <= 0 {
		chunkCapacity = DefaultChunkCapacity
	}
	op := defaultOptions()
	for _, o := range opts {
		o.f(&op)
	}
	ch := &Chain{chunkCap: chunkCapacity, op: op}
	ch.grow(chunkCapacity)
	return ch
}

// grow appends a chunk of at least min bytes and makes it active.
func (ch *Chain) grow(min int) *Context {
	size := ch.chunkCap
	if min > size {
		size = min
	}
	c := newContext(size, ch.op)
	ch.chunks = append(ch.chunks, c)
	ch.cur = len(ch.chunks) - 1
	return c
}

// Malloc carves size bytes out of the active chunk, moving on to the next
// reusable chunk or appending a new one when it does not fit.
func (ch *Chain) Malloc(size int) ([]byte, error) {
	if size < 0 {
		logger.Printf("MEMCTX: %s chain unable to allocate %d bytes", ch.op.name, size)
		return nil, Exception(ErrCapacityExceeded, "when malloc")
	}
	if len(ch.chunks) == 0 {
		// freed chain, start over
		return ch.grow(size).Malloc(size)
	}
	c := ch.chunks[ch.cur]
	if size <= c.Available() {
		return c.Malloc(size)
	}
	// chunks after cur were kept by Reset and are empty again
	if ch.cur+1 < len(ch.chunks) && size <= ch.chunks[ch.cur+1].Available() {
		ch.cur++
		return ch.chunks[ch.cur].Malloc(size)
	}
	return ch.grow(size).Malloc(size)
}

// Forget rewinds the active chunk's cursor to before the most recent Malloc
// and returns the number of bytes reverted. The undo level is scoped to the
// active chunk.
func (ch *Chain) Forget() (int, error) {
	if len(ch.chunks) == 0 {
		logger.Printf("MEMCTX: %s chain cannot forget last allocation", ch.op.name)
		return 0, Exception(ErrInvalidForget, "when forget")
	}
	return ch.chunks[ch.cur].Forget()
}

// Reset rewinds every chunk and keeps them for reuse.
func (ch *Chain) Reset() {
	for _, c := range ch.chunks {
		c.Reset()
	}
	ch.cur = 0
}

// Free releases every chunk. The next Malloc starts the chain over with a
// fresh chunk.
func (ch *Chain) Free() {
	for _, c := range ch.chunks {
		c.Free()
	}
	ch.chunks = nil
	ch.cur = 0
}

// Capacity returns the total byte length of all chunks.
func (ch *Chain) Capacity() (sum int) {
	for _, c := range ch.chunks {
		sum += c.Capacity()
	}
	return sum
}

// Allocated returns the number of bytes carved out across all chunks.
func (ch *Chain) Allocated() (sum int) {
	for _, c := range ch.chunks {
		sum += c.Allocated()
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the chain.
func (ch *Chain) NumChunks() int {
	return len(ch.chunks)
}
