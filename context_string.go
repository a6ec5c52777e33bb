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
	"fmt"
	"io"
)

// MallocCString copies s into the context as a NUL-terminated byte region of
// len(s)+1 bytes.
func (c *Context) MallocCString(s string) ([]byte, error) {
	return mallocCString(c.Malloc, s)
}

// MallocCStringf renders the format into the context as a NUL-terminated
// byte region. The rendered length is measured with a dry-run format pass
// first, so exactly length+1 bytes are allocated.
func (c *Context) MallocCStringf(format string, args ...interface{}) ([]byte, error) {
	return mallocCStringf(c.Malloc, format, args)
}

// MallocCString copies s into the chain as a NUL-terminated byte region.
func (ch *Chain) MallocCString(s string) ([]byte, error) {
	return mallocCString(ch.Malloc, s)
}

// MallocCStringf renders the format into the chain as a NUL-terminated byte
// region, measuring the exact length with a dry-run pass first.
func (ch *Chain) MallocCStringf(format string, args ...interface{}) ([]byte, error) {
	return mallocCStringf(ch.Malloc, format, args)
}

func mallocCString(malloc func(int) ([]byte, error), s string) ([]byte, error) {
	chunk, err := malloc(len(s) + 1)
	if err != nil {
		return nil, err
	}
	copy(chunk, s)
	chunk[len(s)] = 0
	return chunk, nil
}

func mallocCStringf(malloc func(int) ([]byte, error), format string, args []interface{}) ([]byte, error) {
	// measure pass
	n, _ := fmt.Fprintf(io.Discard, format, args...)
	chunk, err := malloc(n + 1)
	if err != nil {
		return nil, err
	}
	// write pass, rendering into the allocated region
	_ = fmt.Appendf(chunk[:0], format, args...)
	chunk[n] = 0
	return chunk, nil
}
