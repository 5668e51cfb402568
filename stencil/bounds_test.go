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

func TestAffineOffset(t *testing.T) {
	x := NewVar("x")
	cases := []struct {
		e    Expr
		want int
	}{
		{x, 0},
		{Add(x, Const(1)), 1},
		{Add(Const(2), x), 2},
		{Sub(x, Const(3)), -3},
	}
	for _, c := range cases {
		got, err := affineOffset(c.e, "x")
		if err != nil {
			t.Fatalf("affineOffset(%s): %v", c.e, err)
		}
		if got != c.want {
			t.Errorf("affineOffset(%s) = %d, want %d", c.e, got, c.want)
		}
	}
}

func TestAffineOffsetRejectsNonAffine(t *testing.T) {
	x := NewVar("x")
	for _, e := range []Expr{
		Mul(x, Const(2)),
		NewVar("z"),
		Const(5),
		Sub(Const(3), x),
	} {
		if _, err := affineOffset(e, "x"); err == nil {
			t.Errorf("affineOffset(%s) succeeded, want error", e)
		}
	}
}

func TestInferFootprint(t *testing.T) {
	in := NewBuffer("in", 16, 4)
	x := NewVar("x")
	y := NewVar("y")
	g := NewFunc("g").Define(x, y, In(in, Clamp(x, 0, 15), y))
	f := NewFunc("f")
	def := Add(g.At(Sub(x, Const(1)), y), Add(g.At(x, y), g.At(Add(x, Const(2)), y)))
	f.Define(x, y, def)

	fp, err := inferFootprint(def, g, "x", "y")
	if err != nil {
		t.Fatal(err)
	}
	if fp.lo != -1 || fp.hi != 2 {
		t.Errorf("footprint = [%d, %d], want [-1, 2]", fp.lo, fp.hi)
	}
	if fp.spread() != 3 {
		t.Errorf("spread = %d, want 3", fp.spread())
	}
}

func TestInferFootprintRejectsWrongRow(t *testing.T) {
	in := NewBuffer("in", 16, 4)
	x := NewVar("x")
	y := NewVar("y")
	g := NewFunc("g").Define(x, y, In(in, x, y))
	def := g.At(x, Const(0)) // y index is not the consumer's row var
	if _, err := inferFootprint(def, g, "x", "y"); err == nil {
		t.Error("inferFootprint accepted a non-row y index")
	}
}
