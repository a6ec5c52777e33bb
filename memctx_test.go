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
	"bytes"
	"encoding/binary"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

func MustNil(t *testing.T, val interface{}) {
	t.Helper()
	Assert(t, val == nil, val)
	if val != nil {
		t.Fatal("assertion nil failed, val=", val)
	}
}

func MustTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		t.Fatal("assertion true failed.")
	}
}

func Equal(t *testing.T, got, expect interface{}) {
	t.Helper()
	if got != expect {
		t.Fatalf("assertion equal failed, got=[%v], expect=[%v]", got, expect)
	}
}

func Assert(t *testing.T, cond bool, val ...interface{}) {
	t.Helper()
	if !cond {
		if len(val) > 0 {
			val = append([]interface{}{"assertion failed:"}, val...)
			t.Fatal(val...)
		} else {
			t.Fatal("assertion failed")
		}
	}
}

func TestEqual(t *testing.T) {
	var err error
	MustNil(t, err)
	MustTrue(t, err == nil)
	Equal(t, err, nil)
	Assert(t, err == nil, err)
}

func TestSizeHelpers(t *testing.T) {
	Equal(t, 1*KB, 1024)
	Equal(t, 1*MB, 1024*1024)
	Equal(t, 1*GB, 1024*1024*1024)
	Equal(t, 64*KB, DefaultChunkCapacity)
}

func TestStaticAndTempLifecycle(t *testing.T) {
	TFree()
	defer TFree()

	ctx := NewContext(1 * KB)
	Equal(t, ctx.Capacity(), 1*KB)

	life, err := ctx.Malloc(4)
	MustNil(t, err)
	binary.LittleEndian.PutUint32(life, 42)
	Equal(t, ctx.Allocated(), 4)

	// first temporary allocation creates the temp context lazily
	unlucky, err := TMalloc(4)
	MustNil(t, err)
	binary.LittleEndian.PutUint32(unlucky, 13)
	MustTrue(t, tempCtx != nil)
	Equal(t, tempCtx.Capacity(), defaultTempCapacity)

	reverted, err := ctx.Forget()
	MustNil(t, err)
	Equal(t, reverted, 4)
	Equal(t, ctx.Allocated(), 0)
	Equal(t, binary.LittleEndian.Uint32(unlucky), uint32(13))

	ctx.Reset()
	TReset()
	ctx.Free()
	TFree()
	Equal(t, ctx.Capacity(), 0)
	MustTrue(t, tempCtx == nil)
}

func TestConfigure(t *testing.T) {
	prevCap := defaultTempCapacity
	defer func() {
		defaultTempCapacity = prevCap
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}()

	var out bytes.Buffer
	err := Configure(Config{TempCapacity: 4 * KB, LoggerOutput: &out})
	MustNil(t, err)
	Equal(t, defaultTempCapacity, 4*KB)

	ctx := NewContext(8)
	defer ctx.Free()
	_, err = ctx.Malloc(16)
	MustTrue(t, errors.Is(err, ErrCapacityExceeded))
	MustTrue(t, strings.Contains(out.String(), "MEMCTX:"))
	MustTrue(t, strings.Contains(out.String(), "static context"))
}

func TestSetLoggerOutput(t *testing.T) {
	defer SetLoggerOutput(os.Stderr)

	var out bytes.Buffer
	SetLoggerOutput(&out)

	ctx := NewContext(4, WithName("scratch"))
	defer ctx.Free()
	_, err := ctx.Forget()
	MustTrue(t, errors.Is(err, ErrInvalidForget))
	MustTrue(t, strings.Contains(out.String(), "scratch context"))
}
