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
	"errors"
	"syscall"
)

// extends syscall.Errno, the range is set to 0x100-0x1FF
const (
	// ErrCapacityExceeded means the requested size exceeds the context's remaining space.
	ErrCapacityExceeded = syscall.Errno(0x101)
	// ErrInvalidForget means no allocation is pending a one-level undo.
	ErrInvalidForget = syscall.Errno(0x102)
)

const errnoMask = 0xFF

// Exception returns an error wrapping the given errno with a message suffix.
// Non-errno errors are wrapped unchanged.
func Exception(err error, suffix string) error {
	no, ok := err.(syscall.Errno)
	if !ok {
		return &exception{no: 0, err: err, suffix: suffix}
	}
	return &exception{no: no, suffix: suffix}
}

type exception struct {
	no     syscall.Errno
	err    error
	suffix string
}

func (e *exception) Error() string {
	var s string
	switch {
	case e.no>>8 == 1:
		s = errnos[int(e.no)&errnoMask]
	case e.no != 0:
		s = e.no.Error()
	default:
		s = e.err.Error()
	}
	if e.suffix != "" {
		s += " " + e.suffix
	}
	return s
}

func (e *exception) Is(target error) bool {
	if e == target {
		return true
	}
	if e.no != 0 && e.no == target {
		return true
	}
	if e.err != nil {
		return errors.Is(e.err, target)
	}
	return false
}

func (e *exception) Unwrap() error {
	if e.no != 0 {
		return e.no
	}
	return e.err
}

// Dismantle the error code, the errno message must be placed at errno & 0xFF.
var errnos = [...]string{
	0x01: "context capacity exceeded",
	0x02: "cannot forget last allocation",
}
