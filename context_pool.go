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

import (
	"runtime"
	_ "unsafe"
)

//go:linkname procPin runtime.procPin
func procPin() int

//go:linkname procUnpin runtime.procUnpin
func procUnpin() int

const (
	defaultPoolLimitPerP   = 8 // contexts kept hot per P
	defaultPoolCleanCycles = 3 // trim inactive every 3 gc cycles
)

// ContextPool keeps per-P free lists of reset contexts, so concurrent
// request handlers can each borrow a private context instead of sharing the
// temporary context. Contexts beyond the per-P limit land on an inactive
// list that is halved every few GC cycles.
type ContextPool struct {
	capacity    int
	op          options
	active      [][]*Context // [pid][idx]
	inactive    [][]*Context // [pid][idx]
	activeLimit int
	ref         *poolRef
}

type poolRef struct {
	p  *ContextPool
	gc int
}

func gcPoolHandler(ref *poolRef) {
	ref.gc++
	// trigger handler every gc cycle
	if ref.gc >= defaultPoolCleanCycles {
		ref.gc = 0
		pid := procPin()
		l := len(ref.p.inactive[pid])
		if l > 0 {
			for _, c := range ref.p.inactive[pid][l/2:] {
				c.Free()
			}
			ref.p.inactive[pid] = ref.p.inactive[pid][:l/2]
		}
		procUnpin()
	}
	runtime.SetFinalizer(ref, gcPoolHandler)
}

// NewContextPool creates a pool handing out contexts of the given capacity.
// If capacity <= 0, the configured temporary-context capacity is used.
func NewContextPool(capacity int, opts ...Option) *ContextPool {
	return newLimitedContextPool(capacity, defaultPoolLimitPerP, opts...)
}

func newLimitedContextPool(capacity, limitPerP int, opts ...Option) *ContextPool {
	if capacity <= 0 {
		capacity = defaultTempCapacity
	}
	op := defaultOptions()
	for _, o := range opts {
		o.f(&op)
	}
	procs := runtime.GOMAXPROCS(0)
	p := &ContextPool{
		capacity:    capacity,
		op:          op,
		active:      make([][]*Context, procs),
		inactive:    make([][]*Context, procs),
		activeLimit: limitPerP,
	}
	p.ref = &poolRef{p: p}
	runtime.SetFinalizer(p.ref, gcPoolHandler)
	p.ref = nil // trigger gc
	return p
}

// Get borrows a context from the pool, creating one when the current P has
// none cached. The context arrives reset, not zeroed.
func (p *ContextPool) Get() (c *Context) {
	pid := procPin()
	if len(p.active[pid]) > 0 {
		c = p.active[pid][0]
		p.active[pid] = p.active[pid][1:]
	} else if len(p.inactive[pid]) > 0 {
		c = p.inactive[pid][0]
		p.inactive[pid] = p.inactive[pid][1:]
	}
	procUnpin()
	if c == nil {
		c = newContext(p.capacity, p.op)
	}
	return c
}

// Put resets the context and returns it to the pool. Contexts whose capacity
// does not match the pool's are freed instead of cached.
func (p *ContextPool) Put(c *Context) {
	if c == nil {
		return
	}
	if c.Capacity() != p.capacity {
		c.Free()
		return
	}
	c.Reset()
	pid := procPin()
	// if out of active limit, put into inactive
	if len(p.active[pid]) >= p.activeLimit {
		p.inactive[pid] = append(p.inactive[pid], c)
	} else {
		p.active[pid] = append(p.active[pid], c)
	}
	procUnpin()
}
