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

import "testing"

func TestBufferAtSet(t *testing.T) {
	b := NewBuffer("b", 4, 3)
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("dims = %dx%d, want 4x3", b.Width(), b.Height())
	}
	b.Set(2, 1, 42)
	if got := b.At(2, 1); got != 42 {
		t.Errorf("At(2, 1) = %d, want 42", got)
	}
	if got := b.At(3, 2); got != 0 {
		t.Errorf("At(3, 2) = %d, want 0 (fresh buffers are zeroed)", got)
	}
}

func TestBufferFill(t *testing.T) {
	b := NewBuffer("b", 5, 2)
	b.Fill(func(x, y int) uint16 { return uint16(10*y + x) })
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			if got, want := b.At(x, y), uint16(10*y+x); got != want {
				t.Fatalf("At(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestBufferDataAliases(t *testing.T) {
	b := NewBuffer("b", 3, 2)
	b.Data()[4] = 7 // row 1, col 1
	if got := b.At(1, 1); got != 7 {
		t.Errorf("At(1, 1) = %d, want 7 after writing through Data", got)
	}
}

func TestBufferOutOfRangePanics(t *testing.T) {
	b := NewBuffer("b", 4, 3)
	cases := [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}}
	for _, c := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d, %d) did not panic", c[0], c[1])
				}
			}()
			b.At(c[0], c[1])
		}()
	}
}
