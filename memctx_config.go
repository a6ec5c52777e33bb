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
)

// global config
var (
	defaultTempCapacity           = 1 * MB
	defaultAllocator    Allocator = heapAllocator{}
)

// Config expose some tuning parameters to control the internal behaviors of memctx.
// Every parameter with the default zero value should keep the default behavior of memctx.
type Config struct {
	TempCapacity int       // capacity of the lazily created temporary context
	Allocator    Allocator // backing allocator for new contexts
	LoggerOutput io.Writer // logger output
}
