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

// Option .
type Option struct {
	f func(*options)
}

type options struct {
	allocator Allocator
	name      string
}

func defaultOptions() options {
	return options{allocator: defaultAllocator, name: "static"}
}

// WithAllocator sets the backing allocator of the context.
func WithAllocator(a Allocator) Option {
	return Option{func(op *options) {
		op.allocator = a
	}}
}

// WithName sets the context name used in diagnostic logs.
func WithName(name string) Option {
	return Option{func(op *options) {
		op.name = name
	}}
}
