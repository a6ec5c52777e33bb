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

// Context is a fixed-capacity bump allocator. The buffer is allocated once at
// construction and never grows. Not goroutine-safe.
type Context struct {
	buf     []byte
	off     int
	lastOff int
	undo    bool
	alloc   Allocator
	name    string
}

// NewContext creates a context backed by a buffer of exactly capacity bytes
// from the configured allocator. With the default allocator the buffer is
// zero-filled; it is never zeroed again afterwards.
func NewContext(capacity int, opts ...Option) *Context {
	op := defaultOptions()
	for _, o := range opts {
		o.f(&op)
	}
	return newContext(capacity, op)
}

func newContext(capacity int, op options) *Context {
	c := &Context{alloc: op.allocator, name: op.name}
	if capacity > 0 {
		c.buf = c.alloc.Malloc(capacity)
	}
	return c
}

// Malloc carves the next size bytes out of the buffer and advances the
// cursor. The returned slice aliases the context's buffer and stays valid
// until Free; after Reset it may be handed out again with its old contents.
// Fails with ErrCapacityExceeded if size bytes do not fit, leaving the
// context untouched.
func (c *Context) Malloc(size int) ([]byte, error) {
	if size < 0 || c.off+size > len(c.buf) {
		logger.Printf("MEMCTX: %s context unable to allocate %d bytes: capacity=%d allocated=%d",
			c.name, size, len(c.buf), c.off)
		return nil, Exception(ErrCapacityExceeded, "when malloc")
	}
	c.lastOff = c.off
	c.undo = true
	chunk := c.buf[c.off : c.off+size : c.off+size]
	c.off += size
	return chunk, nil
}

// Forget rewinds the cursor to before the most recent Malloc and returns the
// number of bytes reverted. Only one level of undo exists: a second Forget
// without a Malloc in between fails with ErrInvalidForget and changes
// nothing.
func (c *Context) Forget() (int, error) {
	if !c.undo {
		logger.Printf("MEMCTX: %s context cannot forget last allocation", c.name)
		return 0, Exception(ErrInvalidForget, "when forget")
	}
	reverted := c.off - c.lastOff
	c.off = c.lastOff
	c.undo = false
	return reverted, nil
}

// Reset rewinds the cursor to zero. The buffer is kept and its contents are
// not zeroed, so later allocations observe stale bytes.
func (c *Context) Reset() {
	c.off = 0
	c.lastOff = 0
	c.undo = false
}

// Free returns the buffer to the allocator and leaves the context with zero
// capacity. The context must not be used again; every later Malloc fails
// with ErrCapacityExceeded.
func (c *Context) Free() {
	if c.buf != nil {
		c.alloc.Free(c.buf)
		c.buf = nil
	}
	c.off = 0
	c.lastOff = 0
	c.undo = false
}

// Capacity returns the total byte length of the buffer.
func (c *Context) Capacity() int {
	return len(c.buf)
}

// Allocated returns the number of bytes currently carved out of the buffer.
func (c *Context) Allocated() int {
	return c.off
}

// Available returns the number of bytes left for allocation.
func (c *Context) Available() int {
	return len(c.buf) - c.off
}
