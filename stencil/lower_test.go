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

import (
	"strings"
	"testing"
)

func testInput(w, h int) *Buffer {
	in := NewBuffer("in", w, h)
	in.Fill(func(x, y int) uint16 { return uint16((x*31 + y*7) & 0xfff) })
	return in
}

// twoTap builds f(x, y) = 3*g(x, y) + g(x+1, y) over a clamped load of in.
func twoTap(name string, in *Buffer) (g, f *Func, x, y Var) {
	x = NewVar("x")
	y = NewVar("y")
	g = NewFunc("g").Define(x, y, In(in, Clamp(x, 0, in.Width()-1), y))
	f = NewFunc(name).Define(x, y, Add(
		Mul(Const(3), g.At(x, y)),
		g.At(Add(x, Const(1)), y)))
	return g, f, x, y
}

func realized(t *testing.T, f *Func, w, h int) *Buffer {
	t.Helper()
	p, err := f.Compile()
	if err != nil {
		t.Fatalf("%s: %v", f.Name(), err)
	}
	out := NewBuffer("out", w, h)
	p.Realize(out)
	return out
}

func TestRealizeScalar(t *testing.T) {
	in := testInput(16, 4)
	x := NewVar("x")
	y := NewVar("y")
	f := NewFunc("double").Define(x, y, Add(Mul(Const(2), In(in, x, y)), Const(1)))

	out := realized(t, f, 16, 4)
	for yy := 0; yy < 4; yy++ {
		for xx := 0; xx < 16; xx++ {
			want := 2*in.At(xx, yy) + 1
			if got := out.At(xx, yy); got != want {
				t.Fatalf("out(%d, %d) = %d, want %d", xx, yy, got, want)
			}
		}
	}
}

func TestVectorizeMatchesScalar(t *testing.T) {
	// Width 20 is not a multiple of 8, so the tail path is exercised too.
	in := testInput(24, 4)

	_, fs, _, _ := twoTap("f_scalar", in)
	scalar := realized(t, fs, 20, 4)

	_, fv, xv, _ := twoTap("f_vec", in)
	fv.Vectorize(xv, 8)
	vec := realized(t, fv, 20, 4)

	for yy := 0; yy < 4; yy++ {
		for xx := 0; xx < 20; xx++ {
			if scalar.At(xx, yy) != vec.At(xx, yy) {
				t.Fatalf("out(%d, %d): scalar %d, vectorized %d",
					xx, yy, scalar.At(xx, yy), vec.At(xx, yy))
			}
		}
	}
}

func TestComputeAtMatchesInline(t *testing.T) {
	in := testInput(24, 5)

	_, base, xb, _ := twoTap("f_inline", in)
	base.Vectorize(xb, 8)
	want := realized(t, base, 20, 5)

	schedules := []struct {
		name string
		atY  bool
	}{
		{"f_group", false},
		{"f_row", true},
	}
	for _, sc := range schedules {
		g, f, x, y := twoTap(sc.name, in)
		f.Vectorize(x, 8)
		if sc.atY {
			g.ComputeAt(f, y)
		} else {
			g.ComputeAt(f, x)
		}
		got := realized(t, f, 20, 5)
		for yy := 0; yy < 5; yy++ {
			for xx := 0; xx < 20; xx++ {
				if got.At(xx, yy) != want.At(xx, yy) {
					t.Fatalf("%s: out(%d, %d) = %d, want %d",
						sc.name, xx, yy, got.At(xx, yy), want.At(xx, yy))
				}
			}
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	in := testInput(40, 33) // odd row count to unbalance the workers

	g, f, x, y := twoTap("f_par", in)
	g.ComputeAt(f, y)
	f.Vectorize(x, 8)
	f.Parallel(y)
	par := realized(t, f, 32, 33)

	_, fs, xs, _ := twoTap("f_ser", in)
	fs.Vectorize(xs, 8)
	ser := realized(t, fs, 32, 33)

	for yy := 0; yy < 33; yy++ {
		for xx := 0; xx < 32; xx++ {
			if par.At(xx, yy) != ser.At(xx, yy) {
				t.Fatalf("out(%d, %d): parallel %d, serial %d",
					xx, yy, par.At(xx, yy), ser.At(xx, yy))
			}
		}
	}
}

func TestRealizeIsRepeatable(t *testing.T) {
	in := testInput(24, 4)
	_, f, x, _ := twoTap("f_repeat", in)
	f.Vectorize(x, 8)
	p, err := f.Compile()
	if err != nil {
		t.Fatal(err)
	}
	out := NewBuffer("out", 16, 4)
	p.Realize(out)
	first := append([]uint16(nil), out.Data()...)
	p.Realize(out)
	for i, v := range out.Data() {
		if v != first[i] {
			t.Fatalf("element %d changed between realizations: %d vs %d", i, first[i], v)
		}
	}
}

func TestDefinitionRendersProducers(t *testing.T) {
	in := testInput(24, 4)
	g, f, x, _ := twoTap("f_def", in)
	g.ComputeAt(f, x)
	f.Vectorize(x, 8)
	p, err := f.Compile()
	if err != nil {
		t.Fatal(err)
	}
	def := p.Definition()
	if !strings.Contains(def, "g(x, y) = in[clamp(x, 0, 23), y]") {
		t.Errorf("definition missing producer:\n%s", def)
	}
	if !strings.Contains(def, "f_def(x, y) = ((3 * g(x, y)) + g((x + 1), y))") {
		t.Errorf("definition missing root:\n%s", def)
	}
}

func TestCompileErrors(t *testing.T) {
	in := testInput(16, 4)
	x := NewVar("x")
	y := NewVar("y")

	cases := []struct {
		name  string
		build func() *Func
	}{
		{"undefined stage", func() *Func {
			return NewFunc("undef")
		}},
		{"vectorize non-innermost var", func() *Func {
			f := NewFunc("f").Define(x, y, In(in, x, y))
			return f.Vectorize(y, 8)
		}},
		{"vectorize one lane", func() *Func {
			f := NewFunc("f").Define(x, y, In(in, x, y))
			return f.Vectorize(x, 1)
		}},
		{"parallel non-row var", func() *Func {
			f := NewFunc("f").Define(x, y, In(in, x, y))
			return f.Parallel(x)
		}},
		{"undefined var", func() *Func {
			return NewFunc("f").Define(x, y, In(in, NewVar("z"), y))
		}},
		{"recursive definition", func() *Func {
			f := NewFunc("f")
			return f.Define(x, y, f.At(x, y))
		}},
		{"compute-at unrelated consumer", func() *Func {
			g := NewFunc("g").Define(x, y, In(in, x, y))
			other := NewFunc("other").Define(x, y, Const(0))
			g.ComputeAt(other, x)
			return NewFunc("f").Define(x, y, g.At(x, y))
		}},
		{"compute-at unknown var", func() *Func {
			g := NewFunc("g").Define(x, y, In(in, x, y))
			f := NewFunc("f").Define(x, y, g.At(x, y))
			g.ComputeAt(f, NewVar("z"))
			return f
		}},
		{"materialized stage calls a stage", func() *Func {
			h := NewFunc("h").Define(x, y, In(in, x, y))
			g := NewFunc("g").Define(x, y, h.At(x, y))
			f := NewFunc("f").Define(x, y, g.At(x, y))
			g.ComputeAt(f, x)
			return f
		}},
		{"non-affine footprint", func() *Func {
			g := NewFunc("g").Define(x, y, In(in, x, y))
			f := NewFunc("f").Define(x, y, g.At(Mul(x, Const(2)), y))
			g.ComputeAt(f, x)
			return f
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := c.build().Compile(); err == nil {
				t.Errorf("Compile succeeded, want error")
			}
		})
	}
}
