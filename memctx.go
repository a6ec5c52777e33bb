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

// Package memctx implements fixed-capacity bump allocation contexts.
//
// A Context owns a single buffer allocated once at construction and serves
// allocations by advancing a cursor. Allocation is O(1), there is no
// per-allocation free, and exactly the most recent allocation can be undone
// with Forget. Reset rewinds the whole context in O(1) without releasing or
// zeroing the buffer, which makes a context cheap to reuse once per request
// or per frame.
//
// Besides explicitly created contexts, the package maintains one process-wide
// temporary context, created lazily on first use and reachable through the
// parameter-free T* functions:
//
//	buf, _ := memctx.TMalloc(64)
//	defer memctx.TReset()
//
// A Context is not goroutine-safe. Use a ContextPool to hand out private
// contexts to concurrent request handlers, or a Chain when the total
// allocation size is not known up front.
//
// Reused memory is never zeroed: only bytes that were never written since
// construction are guaranteed to be zero, and only under the default and
// mmap allocators. Callers that reuse contexts across trust boundaries must
// clear sensitive data themselves.
package memctx

// Size helpers for context capacities.
const (
	KB = 1 << (10 * (iota + 1))
	MB
	GB
)
