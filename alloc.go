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
	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"
)

// Allocator supplies and reclaims the backing buffer of a context.
// Malloc returns a slice of exactly size bytes, or nil if the underlying
// allocation failed. Free reclaims a buffer previously returned by Malloc;
// it must not be called twice for the same buffer.
type Allocator interface {
	Malloc(size int) []byte
	Free(buf []byte)
}

// heapAllocator is the default allocator. Buffers come from the Go heap and
// are zero-filled; Free leaves reclamation to the garbage collector.
type heapAllocator struct{}

func (heapAllocator) Malloc(size int) []byte { return make([]byte, size) }

func (heapAllocator) Free(buf []byte) {}

// AllocatorMCache reuses buffers through mcache size classes. A reused buffer
// keeps whatever bytes were last written to it, so contexts backed by it lose
// the zero-filled-at-construction guarantee.
var AllocatorMCache Allocator = mcacheAllocator{}

type mcacheAllocator struct{}

func (mcacheAllocator) Malloc(size int) []byte { return mcache.Malloc(size, size) }

func (mcacheAllocator) Free(buf []byte) { mcache.Free(buf) }

// AllocatorDirty allocates from the Go heap without zero filling.
var AllocatorDirty Allocator = dirtyAllocator{}

type dirtyAllocator struct{}

func (dirtyAllocator) Malloc(size int) []byte { return dirtmake.Bytes(size, size) }

func (dirtyAllocator) Free(buf []byte) {}
