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

// Package stencil is a miniature schedulable pipeline compiler for 2-D
// integer sample grids.
//
// A pipeline is built from named stages (Func) defined as expressions over
// free index variables, buffer loads, and calls to other stages. Scheduling
// directives control how the definition is lowered without changing its
// meaning: Vectorize groups consecutive x values into lanes, ComputeAt pins
// where a producer stage is materialized relative to its consumer's loop
// nest (once per vector group, or once per row), and Parallel distributes
// the row loop across a worker pool.
//
// Compile lowers a stage into an executable Pipeline; Realize fills a
// caller-provided output buffer. Pipelines can additionally emit a readable
// listing of the lowered loop nest, and a Go-source rendition of the
// unscheduled kernel, for inspection.
package stencil
