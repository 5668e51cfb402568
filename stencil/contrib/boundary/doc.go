// Copyright 2025 go-stencil Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package boundary compares ways of scheduling a boundary clamp inside a
// vectorized two-tap kernel.
//
// The kernel is f(x, y) = 3*in(x, y) + in(x+1, y). Near the right edge the
// x+1 tap runs past the valid columns, so clamped variants rewrite both tap
// indices into [MinIndex, MaxIndex] before loading. The package builds four
// pipelines sharing that mathematics and differing only in where the clamp
// is materialized: fused into the vector body, scalarized per vector group,
// or padded per row; an unclamped baseline provides a speed floor. A scalar
// oracle verifies every clamped variant exactly, and a timing-ordering
// check asserts the fused clamp never loses to scalarizing the same work.
package boundary
