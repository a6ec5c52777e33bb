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
	"sync"
)

// The process-wide temporary context. The core Context is unsynchronized;
// the lock lives here in the wrapper, so explicitly created contexts pay
// nothing for it.
var (
	tempMu  sync.Mutex
	tempCtx *Context
)

// temp returns the temporary context, creating it at the configured capacity
// on first use. Callers must hold tempMu.
func temp() *Context {
	if tempCtx == nil {
		tempCtx = newContext(defaultTempCapacity, options{allocator: defaultAllocator, name: "temp"})
	}
	return tempCtx
}

// TMalloc allocates size bytes from the temporary context, creating it on
// first use. The region stays valid until TFree; TReset may hand it out
// again. Typical callers pair allocations with one TReset per request or
// frame.
func TMalloc(size int) ([]byte, error) {
	tempMu.Lock()
	defer tempMu.Unlock()
	return temp().Malloc(size)
}

// TForget rewinds the temporary context's cursor to before the most recent
// TMalloc and returns the number of bytes reverted.
func TForget() (int, error) {
	tempMu.Lock()
	defer tempMu.Unlock()
	return temp().Forget()
}

// TMallocCString copies s into the temporary context as a NUL-terminated
// byte region.
func TMallocCString(s string) ([]byte, error) {
	tempMu.Lock()
	defer tempMu.Unlock()
	return temp().MallocCString(s)
}

// TMallocCStringf renders the format into the temporary context as a
// NUL-terminated byte region.
func TMallocCStringf(format string, args ...interface{}) ([]byte, error) {
	tempMu.Lock()
	defer tempMu.Unlock()
	return temp().MallocCStringf(format, args...)
}

// TReset rewinds the temporary context without releasing its buffer.
func TReset() {
	tempMu.Lock()
	defer tempMu.Unlock()
	temp().Reset()
}

// TFree releases the temporary context's buffer and returns it to the
// uninitialized state; the next temporary allocation re-creates it at the
// configured capacity.
func TFree() {
	tempMu.Lock()
	defer tempMu.Unlock()
	if tempCtx != nil {
		tempCtx.Free()
		tempCtx = nil
	}
}
