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

// Func is a named pipeline stage: a definition "name(x, y) = expr" plus
// scheduling directives. Definitions are written once; directives may be
// attached in any order before Compile. All validation is deferred to
// Compile so that construction never fails halfway.
type Func struct {
	name    string
	x, y    Var
	def     Expr
	defined bool

	vecVar   string
	vecLanes int
	parVar   string

	atConsumer *Func
	atVar      string
}

// NewFunc creates an undefined stage with the given name. The name is used
// for listing filenames and generated symbols, so it should be a valid
// identifier fragment (letters, digits, underscores).
func NewFunc(name string) *Func {
	if name == "" {
		panic("stencil: NewFunc with empty name")
	}
	return &Func{name: name}
}

// Name returns the stage name.
func (f *Func) Name() string { return f.name }

// Define sets the stage's definition: f(x, y) = def. The two Vars are the
// stage's formal index variables; def may reference only those.
func (f *Func) Define(x, y Var, def Expr) *Func {
	if f.defined {
		panic(fmt.Sprintf("stencil: %s defined twice", f.name))
	}
	f.x, f.y = x, y
	f.def = def
	f.defined = true
	return f
}

// At builds a call to this stage at the given index expressions, for use
// inside another stage's definition.
func (f *Func) At(x, y Expr) Expr {
	return callExpr{fn: f, x: x, y: y}
}

// Vectorize groups lanes consecutive values of v into a single vector-group
// evaluation. v must be the stage's x (innermost) variable.
func (f *Func) Vectorize(v Var, lanes int) *Func {
	f.vecVar = v.name
	f.vecLanes = lanes
	return f
}

// ComputeAt pins this stage to materialize at the consumer's loop over v:
// at the consumer's x variable the stage is evaluated scalar once per
// vector group, at the y variable once per row into a row-wide scratch.
// Without ComputeAt the stage is inlined into its consumer and evaluated
// per lane.
func (f *Func) ComputeAt(consumer *Func, v Var) *Func {
	f.atConsumer = consumer
	f.atVar = v.name
	return f
}

// Parallel distributes the loop over v across a worker pool. v must be the
// stage's y (row) variable.
func (f *Func) Parallel(v Var) *Func {
	f.parVar = v.name
	return f
}
