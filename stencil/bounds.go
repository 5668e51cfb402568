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

// footprint is the closed range of constant x offsets, relative to the
// consumer's x variable, at which a producer stage is called.
type footprint struct {
	lo, hi int
}

func (fp footprint) spread() int { return fp.hi - fp.lo }

// affineOffset resolves an index expression of the form x, x+c, c+x, or x-c
// to its constant offset from the variable named xName. Anything else is a
// bounds-inference failure: scratch sizing needs a constant footprint.
func affineOffset(e Expr, xName string) (int, error) {
	switch n := e.(type) {
	case Var:
		if n.name == xName {
			return 0, nil
		}
	case binExpr:
		if n.op == '+' {
			if v, ok := n.a.(Var); ok && v.name == xName {
				if c, ok := n.b.(constExpr); ok {
					return c.v, nil
				}
			}
			if c, ok := n.a.(constExpr); ok {
				if v, ok := n.b.(Var); ok && v.name == xName {
					return c.v, nil
				}
			}
		}
		if n.op == '-' {
			if v, ok := n.a.(Var); ok && v.name == xName {
				if c, ok := n.b.(constExpr); ok {
					return -c.v, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("stencil: index %s is not affine in %s", e, xName)
}

// inferFootprint scans the consumer definition def for calls to producer p
// and returns the x-offset range of those calls. Every call's y argument
// must be exactly the consumer's y variable: materialized scratch is keyed
// to the current row.
func inferFootprint(def Expr, p *Func, xName, yName string) (footprint, error) {
	fp := footprint{}
	found := false
	var firstErr error
	walkExpr(def, func(e Expr) {
		c, ok := e.(callExpr)
		if !ok || c.fn != p || firstErr != nil {
			return
		}
		if v, ok := c.y.(Var); !ok || v.name != yName {
			firstErr = fmt.Errorf("stencil: %s computed at %s but called with y index %s (want %s)",
				p.name, xName, c.y, yName)
			return
		}
		off, err := affineOffset(c.x, xName)
		if err != nil {
			firstErr = err
			return
		}
		if !found {
			fp = footprint{lo: off, hi: off}
			found = true
			return
		}
		fp.lo = min(fp.lo, off)
		fp.hi = max(fp.hi, off)
	})
	if firstErr != nil {
		return footprint{}, firstErr
	}
	if !found {
		return footprint{}, fmt.Errorf("stencil: %s is never called by its consumer", p.name)
	}
	return fp, nil
}
