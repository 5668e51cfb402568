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
	"fmt"
	"strconv"
)

// Expr is an immutable expression tree node. Expressions evaluate to
// integers; values stored to a buffer are truncated to uint16 on store,
// matching unsigned 16-bit arithmetic.
type Expr interface {
	// String renders a stable human-readable form. Two expressions built
	// from the same constructors render identically, which makes the
	// rendering usable as a definition-equality check.
	String() string

	isExpr()
}

// Var is a free index variable, identified by name. Vars become loop
// variables when a Func using them is lowered.
type Var struct {
	name string
}

// NewVar creates an index variable.
func NewVar(name string) Var {
	if name == "" {
		panic("stencil: NewVar with empty name")
	}
	return Var{name: name}
}

// Name returns the variable's name.
func (v Var) Name() string { return v.name }

func (v Var) String() string { return v.name }
func (v Var) isExpr()        {}

type constExpr struct {
	v int
}

// Const creates an integer constant expression.
func Const(v int) Expr { return constExpr{v: v} }

func (c constExpr) String() string { return strconv.Itoa(c.v) }
func (c constExpr) isExpr()        {}

type binExpr struct {
	op   byte // '+', '-', '*'
	a, b Expr
}

// Add returns a + b.
func Add(a, b Expr) Expr { return binExpr{op: '+', a: a, b: b} }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return binExpr{op: '-', a: a, b: b} }

// Mul returns a * b.
func Mul(a, b Expr) Expr { return binExpr{op: '*', a: a, b: b} }

func (e binExpr) String() string {
	return fmt.Sprintf("(%s %c %s)", e.a, e.op, e.b)
}
func (e binExpr) isExpr() {}

type clampExpr struct {
	e      Expr
	lo, hi int
}

// Clamp rewrites e to the nearest value in the closed interval [lo, hi].
func Clamp(e Expr, lo, hi int) Expr {
	if lo > hi {
		panic(fmt.Sprintf("stencil: Clamp with empty interval [%d, %d]", lo, hi))
	}
	return clampExpr{e: e, lo: lo, hi: hi}
}

func (e clampExpr) String() string {
	return fmt.Sprintf("clamp(%s, %d, %d)", e.e, e.lo, e.hi)
}
func (e clampExpr) isExpr() {}

type loadExpr struct {
	buf  *Buffer
	x, y Expr
}

// In reads buf at the coordinates given by the index expressions.
func In(buf *Buffer, x, y Expr) Expr {
	return loadExpr{buf: buf, x: x, y: y}
}

func (e loadExpr) String() string {
	return fmt.Sprintf("%s[%s, %s]", e.buf.name, e.x, e.y)
}
func (e loadExpr) isExpr() {}

type callExpr struct {
	fn   *Func
	x, y Expr
}

func (e callExpr) String() string {
	return fmt.Sprintf("%s(%s, %s)", e.fn.name, e.x, e.y)
}
func (e callExpr) isExpr() {}

// walkExpr visits e and every sub-expression in construction order.
func walkExpr(e Expr, visit func(Expr)) {
	visit(e)
	switch n := e.(type) {
	case binExpr:
		walkExpr(n.a, visit)
		walkExpr(n.b, visit)
	case clampExpr:
		walkExpr(n.e, visit)
	case loadExpr:
		walkExpr(n.x, visit)
		walkExpr(n.y, visit)
	case callExpr:
		walkExpr(n.x, visit)
		walkExpr(n.y, visit)
	}
}
