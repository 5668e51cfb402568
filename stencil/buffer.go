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

package stencil

import "fmt"

// Buffer is a 2-D plane of uint16 samples in row-major order. The name is
// used when the buffer appears in printed definitions, listings, and
// generated kernels.
//
// Buffers carry no synchronization. A realization overwrites every element
// of its output buffer; input buffers are only read.
type Buffer struct {
	name   string
	width  int
	height int
	data   []uint16
}

// NewBuffer allocates a zeroed width×height buffer.
func NewBuffer(name string, width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("stencil: NewBuffer(%q, %d, %d): dimensions must be positive", name, width, height))
	}
	return &Buffer{
		name:   name,
		width:  width,
		height: height,
		data:   make([]uint16, width*height),
	}
}

// Name returns the buffer's name.
func (b *Buffer) Name() string { return b.name }

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// At returns the sample at (x, y). Panics if the coordinate is out of range.
func (b *Buffer) At(x, y int) uint16 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("stencil: %s[%d, %d] out of range [%d×%d]", b.name, x, y, b.width, b.height))
	}
	return b.data[y*b.width+x]
}

// Set stores a sample at (x, y). Panics if the coordinate is out of range.
func (b *Buffer) Set(x, y int, v uint16) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("stencil: %s[%d, %d] out of range [%d×%d]", b.name, x, y, b.width, b.height))
	}
	b.data[y*b.width+x] = v
}

// Fill sets every element to f(x, y).
func (b *Buffer) Fill(f func(x, y int) uint16) {
	for y := 0; y < b.height; y++ {
		row := b.data[y*b.width : (y+1)*b.width]
		for x := range row {
			row[x] = f(x, y)
		}
	}
}

// Data returns the backing slice in row-major order. The slice aliases the
// buffer; callers that mutate it see the change reflected in At.
func (b *Buffer) Data() []uint16 { return b.data }
