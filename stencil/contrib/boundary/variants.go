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

package boundary

import (
	"fmt"

	"github.com/ajroetker/go-stencil/stencil"
)

// Strategy selects how a variant schedules the boundary clamp relative to
// the vectorized consumer.
type Strategy int

const (
	// Unclamped reads the input directly with no bounds handling. It is a
	// speed floor only and is mathematically different at the boundary;
	// it must never be correctness-checked.
	Unclamped Strategy = iota

	// FusedClamp vectorizes the clamped load together with the consumer,
	// so the clamp runs on every lane.
	FusedClamp

	// ScalarInnerClamp materializes the clamped load as scalar code once
	// per vector group, immediately before the vectorized body.
	ScalarInnerClamp

	// ScalarOuterClamp materializes the clamped load once per row into a
	// padded scratch line ahead of the vectorized loop.
	ScalarOuterClamp
)

// Strategies lists all four variants in trial order.
var Strategies = []Strategy{Unclamped, FusedClamp, ScalarInnerClamp, ScalarOuterClamp}

func (s Strategy) String() string {
	switch s {
	case Unclamped:
		return "unclamped"
	case FusedClamp:
		return "clamped vector load"
	case ScalarInnerClamp:
		return "scalarize the load"
	case ScalarOuterClamp:
		return "pad the input"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// PipelineName returns the stage name the strategy compiles under; the
// listing artifact is written as <name>.s.
func (s Strategy) PipelineName() string {
	switch s {
	case Unclamped:
		return "f_unclamped"
	case FusedClamp:
		return "f_clamped"
	case ScalarInnerClamp:
		return "f_scalar_inner"
	case ScalarOuterClamp:
		return "f_scalar_outer"
	}
	return fmt.Sprintf("f_strategy_%d", int(s))
}

// Build constructs and compiles one variant over the given input buffer.
//
// The three clamped strategies share a single construction of the clamp
// stage and the combine expression; the switch below only attaches
// scheduling directives. That keeps the variants mathematically identical
// by construction, so the oracle's verdict covers all of them.
func Build(in *stencil.Buffer, s Strategy) (*stencil.Pipeline, error) {
	x := stencil.NewVar("x")
	y := stencil.NewVar("y")

	if s == Unclamped {
		f := stencil.NewFunc(s.PipelineName())
		f.Define(x, y, stencil.Add(
			stencil.Mul(stencil.Const(3), stencil.In(in, x, y)),
			stencil.In(in, stencil.Add(x, stencil.Const(1)), y)))
		f.Vectorize(x, Lanes)
		return f.Compile()
	}

	g := stencil.NewFunc("g_clamped")
	g.Define(x, y, stencil.In(in, stencil.Clamp(x, MinIndex, MaxIndex), y))

	f := stencil.NewFunc(s.PipelineName())
	f.Define(x, y, stencil.Add(
		stencil.Mul(stencil.Const(3), g.At(x, y)),
		g.At(stencil.Add(x, stencil.Const(1)), y)))
	f.Vectorize(x, Lanes)

	switch s {
	case FusedClamp:
		// Inlined: the clamp executes on every lane.
	case ScalarInnerClamp:
		g.ComputeAt(f, x)
	case ScalarOuterClamp:
		g.ComputeAt(f, y)
	default:
		return nil, fmt.Errorf("boundary: unknown strategy %d", int(s))
	}
	return f.Compile()
}
