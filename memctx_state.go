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
	"io"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

// Initialize the temporary context actively. By default, it's lazy initialized.
// It's safe to call it multi times.
func Initialize() {
	tempMu.Lock()
	defer tempMu.Unlock()
	_ = temp()
}

// Configure the internal behaviors of memctx.
// Configure must be called before any context is created, because contexts
// capture the default allocator at construction.
func Configure(config Config) (err error) {
	if config.TempCapacity > 0 {
		defaultTempCapacity = config.TempCapacity
	}
	if config.Allocator != nil {
		defaultAllocator = config.Allocator
	}
	if config.LoggerOutput != nil {
		logger = log.New(config.LoggerOutput, "", log.LstdFlags)
	}
	return nil
}

// SetLoggerOutput sets the logger output target.
// Deprecated: use Configure instead.
func SetLoggerOutput(w io.Writer) {
	logger = log.New(w, "", log.LstdFlags)
}
