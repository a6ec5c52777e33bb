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

//go:build !race
// +build !race

package memctx

import (
	"runtime"
	"sync"
	"testing"
)

func TestContextPoolSingleP(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(procs)
	Equal(t, runtime.GOMAXPROCS(0), 1)

	p := NewContextPool(1 * KB)
	c := p.Get()
	Equal(t, c.Capacity(), 1*KB)
	b, err := c.Malloc(128)
	MustNil(t, err)
	Equal(t, len(b), 128)

	p.Put(c)
	Equal(t, len(p.active[0]), 1)

	c2 := p.Get()
	MustTrue(t, c2 == c)
	Equal(t, c2.Allocated(), 0)
	Equal(t, len(p.active[0]), 0)
	p.Put(c2)
}

func TestContextPoolWrongCapacity(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(procs)

	p := NewContextPool(1 * KB)
	c := NewContext(2 * KB)
	p.Put(c)
	Equal(t, len(p.active[0]), 0)
	// the mismatched context was freed, not cached
	Equal(t, c.Capacity(), 0)
}

func TestContextPoolMultiP(t *testing.T) {
	p := NewContextPool(1 * KB)
	procs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	for i := 0; i < procs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c := p.Get()
				b, err := c.Malloc(64)
				if err != nil {
					t.Error(err)
					return
				}
				copy(b, "abcdefgh")
				runtime.Gosched()
				p.Put(c)
			}
		}()
	}
	wg.Wait()
}

func TestContextPoolGC(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(procs)
	Equal(t, runtime.GOMAXPROCS(0), 1)

	p := newLimitedContextPool(1*KB, 1)
	c1 := p.Get()
	c2 := p.Get()
	p.Put(c1)
	p.Put(c2)
	Equal(t, len(p.active[0]), 1)
	Equal(t, len(p.inactive[0]), 1)

	for i := 0; i < defaultPoolCleanCycles; i++ {
		runtime.GC()
	}
	Equal(t, len(p.active[0]), 1)
	Equal(t, len(p.inactive[0]), 0)
	// trimmed contexts were released
	Equal(t, c2.Capacity(), 0)
	Equal(t, c1.Capacity(), 1*KB)
}

func BenchmarkContextPool(b *testing.B) {
	p := NewContextPool(64 * KB)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c := p.Get()
			if _, err := c.Malloc(1024); err != nil {
				b.Error(err)
				return
			}
			p.Put(c)
		}
	})
}
