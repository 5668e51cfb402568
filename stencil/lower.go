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
	"strings"
)

// matLevel says at which loop level a producer's scratch is refilled.
type matLevel int

const (
	matGroup matLevel = iota // once per vector group, scalar loop
	matRow                   // once per row, ahead of the vectorized loop
)

func (l matLevel) String() string {
	if l == matRow {
		return "row"
	}
	return "group"
}

// matPlan is one producer stage pinned by ComputeAt: its compiled
// definition plus the footprint that sizes the scratch.
type matPlan struct {
	fn    *Func
	level matLevel
	fp    footprint
	slot  int
	eval  evalFn
}

// evalFn evaluates a lowered expression at one coordinate. The state
// carries the scratch buffers for the current worker, so evaluation is safe
// to run from several workers with distinct states.
type evalFn func(st *state, x, y int) int

type state struct {
	mats []matState
}

type matState struct {
	buf  []int
	base int // x coordinate of buf[0]
}

// Pipeline is a compiled, immutable stage. Realize may be called any number
// of times; each call fully populates the output buffer.
type Pipeline struct {
	fn        *Func
	lanes     int
	parallel  bool
	rowMats   []*matPlan
	groupMats []*matPlan
	nmats     int
	root      evalFn
	producers []*Func // inlined and materialized, in first-call order
}

// Compile lowers the stage and its producers into an executable Pipeline.
// It validates the definition and every scheduling directive; an error here
// means the schedule, not the math, is wrong.
func (f *Func) Compile() (*Pipeline, error) {
	if !f.defined {
		return nil, fmt.Errorf("stencil: %s compiled before Define", f.name)
	}

	lanes := 1
	if f.vecVar != "" {
		if f.vecVar != f.x.name {
			return nil, fmt.Errorf("stencil: %s vectorizes %q; only the innermost var %q can be vectorized",
				f.name, f.vecVar, f.x.name)
		}
		if f.vecLanes < 2 {
			return nil, fmt.Errorf("stencil: %s vectorized with %d lanes", f.name, f.vecLanes)
		}
		lanes = f.vecLanes
	}
	if f.parVar != "" && f.parVar != f.y.name {
		return nil, fmt.Errorf("stencil: %s parallelizes %q; only the row var %q can be parallel",
			f.name, f.parVar, f.y.name)
	}

	p := &Pipeline{
		fn:       f,
		lanes:    lanes,
		parallel: f.parVar != "",
	}
	c := &compiler{p: p, visiting: map[*Func]bool{f: true}}

	// Plan materialization before compiling the consumer body, so that call
	// sites know whether to read scratch or inline.
	if err := c.planMaterialization(); err != nil {
		return nil, err
	}

	root, err := c.compileExpr(f.def, f.x.name, f.y.name)
	if err != nil {
		return nil, err
	}
	p.root = root
	return p, nil
}

type compiler struct {
	p        *Pipeline
	mats     map[*Func]*matPlan
	visiting map[*Func]bool
}

// planMaterialization collects producers of the root stage that carry a
// ComputeAt directive and builds their scratch plans.
func (c *compiler) planMaterialization() error {
	f := c.p.fn
	c.mats = make(map[*Func]*matPlan)

	var callees []*Func
	seen := map[*Func]bool{}
	walkExpr(f.def, func(e Expr) {
		if call, ok := e.(callExpr); ok && !seen[call.fn] {
			seen[call.fn] = true
			callees = append(callees, call.fn)
		}
	})

	for _, g := range callees {
		if !g.defined {
			return fmt.Errorf("stencil: %s calls undefined stage %s", f.name, g.name)
		}
		if g.atConsumer == nil {
			continue // inlined
		}
		if g.atConsumer != f {
			return fmt.Errorf("stencil: %s is computed at %s but consumed by %s",
				g.name, g.atConsumer.name, f.name)
		}
		var level matLevel
		switch g.atVar {
		case f.x.name:
			level = matGroup
		case f.y.name:
			level = matRow
		default:
			return fmt.Errorf("stencil: %s computed at unknown var %q of %s", g.name, g.atVar, f.name)
		}
		if hasCalls(g.def) {
			return fmt.Errorf("stencil: materialized stage %s may only read buffers, not other stages", g.name)
		}
		fp, err := inferFootprint(f.def, g, f.x.name, f.y.name)
		if err != nil {
			return err
		}
		eval, err := c.compileExpr(g.def, g.x.name, g.y.name)
		if err != nil {
			return err
		}
		m := &matPlan{fn: g, level: level, fp: fp, slot: c.p.nmats, eval: eval}
		c.p.nmats++
		c.mats[g] = m
		if level == matRow {
			c.p.rowMats = append(c.p.rowMats, m)
		} else {
			c.p.groupMats = append(c.p.groupMats, m)
		}
	}
	return nil
}

func hasCalls(e Expr) bool {
	found := false
	walkExpr(e, func(e Expr) {
		if _, ok := e.(callExpr); ok {
			found = true
		}
	})
	return found
}

// compileExpr lowers an expression into an evalFn. xName and yName are the
// names bound to the coordinate arguments in this scope; inlined producer
// bodies are compiled in their own formal scope and fed computed
// coordinates, so no substitution environment is needed.
func (c *compiler) compileExpr(e Expr, xName, yName string) (evalFn, error) {
	switch n := e.(type) {
	case Var:
		switch n.name {
		case xName:
			return func(st *state, x, y int) int { return x }, nil
		case yName:
			return func(st *state, x, y int) int { return y }, nil
		}
		return nil, fmt.Errorf("stencil: undefined var %q (scope has %q, %q)", n.name, xName, yName)

	case constExpr:
		v := n.v
		return func(st *state, x, y int) int { return v }, nil

	case binExpr:
		af, err := c.compileExpr(n.a, xName, yName)
		if err != nil {
			return nil, err
		}
		bf, err := c.compileExpr(n.b, xName, yName)
		if err != nil {
			return nil, err
		}
		switch n.op {
		case '+':
			return func(st *state, x, y int) int { return af(st, x, y) + bf(st, x, y) }, nil
		case '-':
			return func(st *state, x, y int) int { return af(st, x, y) - bf(st, x, y) }, nil
		case '*':
			return func(st *state, x, y int) int { return af(st, x, y) * bf(st, x, y) }, nil
		}
		return nil, fmt.Errorf("stencil: unknown operator %q", n.op)

	case clampExpr:
		ef, err := c.compileExpr(n.e, xName, yName)
		if err != nil {
			return nil, err
		}
		lo, hi := n.lo, n.hi
		return func(st *state, x, y int) int {
			return min(max(ef(st, x, y), lo), hi)
		}, nil

	case loadExpr:
		xf, err := c.compileExpr(n.x, xName, yName)
		if err != nil {
			return nil, err
		}
		yf, err := c.compileExpr(n.y, xName, yName)
		if err != nil {
			return nil, err
		}
		buf := n.buf
		return func(st *state, x, y int) int {
			return int(buf.At(xf(st, x, y), yf(st, x, y)))
		}, nil

	case callExpr:
		xf, err := c.compileExpr(n.x, xName, yName)
		if err != nil {
			return nil, err
		}
		g := n.fn
		if m, ok := c.mats[g]; ok {
			// Materialized: read the scratch filled at this row/group.
			slot := m.slot
			return func(st *state, x, y int) int {
				ms := &st.mats[slot]
				return ms.buf[xf(st, x, y)-ms.base]
			}, nil
		}
		// Inlined: compile the producer body in its own scope and feed it
		// the computed call coordinates.
		if !g.defined {
			return nil, fmt.Errorf("stencil: call to undefined stage %s", g.name)
		}
		if c.visiting[g] {
			return nil, fmt.Errorf("stencil: recursive definition through %s", g.name)
		}
		c.rememberProducer(g)
		c.visiting[g] = true
		body, err := c.compileExpr(g.def, g.x.name, g.y.name)
		c.visiting[g] = false
		if err != nil {
			return nil, err
		}
		yf, err := c.compileExpr(n.y, xName, yName)
		if err != nil {
			return nil, err
		}
		return func(st *state, x, y int) int {
			return body(st, xf(st, x, y), yf(st, x, y))
		}, nil
	}
	return nil, fmt.Errorf("stencil: cannot lower %T", e)
}

func (c *compiler) rememberProducer(g *Func) {
	for _, p := range c.p.producers {
		if p == g {
			return
		}
	}
	c.p.producers = append(c.p.producers, g)
}

// Name returns the compiled stage's name.
func (p *Pipeline) Name() string { return p.fn.name }

// Lanes returns the vector-group width (1 when unvectorized).
func (p *Pipeline) Lanes() int { return p.lanes }

// Definition renders the unscheduled mathematical definition of the
// pipeline: each producer stage, then the root stage. Two pipelines whose
// Definitions are equal compute the same function regardless of schedule.
func (p *Pipeline) Definition() string {
	var sb strings.Builder
	for _, m := range append(append([]*matPlan{}, p.rowMats...), p.groupMats...) {
		fmt.Fprintf(&sb, "%s(%s, %s) = %s\n", m.fn.name, m.fn.x.name, m.fn.y.name, m.fn.def)
	}
	for _, g := range p.producers {
		fmt.Fprintf(&sb, "%s(%s, %s) = %s\n", g.name, g.x.name, g.y.name, g.def)
	}
	fmt.Fprintf(&sb, "%s(%s, %s) = %s\n", p.fn.name, p.fn.x.name, p.fn.y.name, p.fn.def)
	return sb.String()
}

func (p *Pipeline) newState(width int) *state {
	st := &state{mats: make([]matState, p.nmats)}
	for _, m := range append(append([]*matPlan{}, p.rowMats...), p.groupMats...) {
		n := p.lanes + m.fp.spread()
		if m.level == matRow {
			n = width + m.fp.spread()
		}
		st.mats[m.slot] = matState{buf: make([]int, n)}
	}
	return st
}

// materialize fills m's scratch with producer values covering count
// consecutive consumer x values starting at x0, for row y.
func (p *Pipeline) materialize(st *state, m *matPlan, x0, count, y int) {
	lo := x0 + m.fp.lo
	n := count + m.fp.spread()
	ms := &st.mats[m.slot]
	ms.base = lo
	buf := ms.buf[:n]
	for i := range buf {
		buf[i] = m.eval(st, lo+i, y)
	}
}

func (p *Pipeline) runRow(st *state, out *Buffer, y int) {
	w := out.width
	for _, m := range p.rowMats {
		p.materialize(st, m, 0, w, y)
	}
	row := out.data[y*w : (y+1)*w]
	for x0 := 0; x0 < w; x0 += p.lanes {
		n := min(p.lanes, w-x0)
		for _, m := range p.groupMats {
			p.materialize(st, m, x0, n, y)
		}
		for dx := 0; dx < n; dx++ {
			row[x0+dx] = uint16(p.root(st, x0+dx, y))
		}
	}
}

// Realize executes the pipeline, filling every element of out. It blocks
// until the whole buffer is written. Input footprints that fall outside
// their buffers (and are not clamped in the definition) panic, the same way
// a direct out-of-range At does.
func (p *Pipeline) Realize(out *Buffer) {
	h := out.height
	if p.parallel {
		parallelRows(h, func() func(y int) {
			st := p.newState(out.width)
			return func(y int) { p.runRow(st, out, y) }
		})
		return
	}
	st := p.newState(out.width)
	for y := 0; y < h; y++ {
		p.runRow(st, out, y)
	}
}
