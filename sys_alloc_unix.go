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

//go:build darwin || netbsd || freebsd || openbsd || dragonfly || linux
// +build darwin netbsd freebsd openbsd dragonfly linux

package memctx

import (
	"golang.org/x/sys/unix"
)

// AllocatorMmap returns an allocator that places buffers in anonymous private
// mappings outside the Go heap. Pages are zero-filled by the kernel. Free
// unmaps the buffer immediately, so any outstanding slice into it becomes
// invalid the moment the owning context is freed.
func AllocatorMmap() Allocator {
	return mmapAllocator{}
}

type mmapAllocator struct{}

func (mmapAllocator) Malloc(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		logger.Printf("MEMCTX: mmap %d bytes failed: %v", size, err)
		return nil
	}
	return buf[:size:size]
}

func (mmapAllocator) Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	if err := unix.Munmap(buf[:cap(buf)]); err != nil {
		logger.Printf("MEMCTX: munmap failed: %v", err)
	}
}
