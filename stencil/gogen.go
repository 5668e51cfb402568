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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"
)

// EmitGoKernel writes a straight-line Go rendition of the pipeline's
// unscheduled definition to path, gofmt'd. All producer stages are inlined,
// so the emitted function shows the mathematics a correct schedule must
// preserve; it deliberately does not reflect vectorization or
// materialization choices.
func (p *Pipeline) EmitGoKernel(path string) error {
	bufs := p.referencedBuffers()

	var src bytes.Buffer
	src.WriteString("// Code generated by go-stencil. DO NOT EDIT.\n\n")
	src.WriteString("// Package kernels holds reference renditions of compiled pipelines.\n")
	src.WriteString("package kernels\n\n")

	sym := symbolName(p.fn.name)
	fmt.Fprintf(&src, "// %s is the unscheduled reference kernel for pipeline %q.\n", sym, p.fn.name)
	fmt.Fprintf(&src, "func %s(", sym)
	for _, b := range bufs {
		id := identFor(b.name)
		fmt.Fprintf(&src, "%s []uint16, %sStride int, ", id, id)
	}
	src.WriteString("out []uint16, outStride, width, height int) {\n")
	src.WriteString("\tfor y := 0; y < height; y++ {\n")
	src.WriteString("\t\tfor x := 0; x < width; x++ {\n")
	body, err := goExpr(p.fn.def, map[string]string{p.fn.x.name: "x", p.fn.y.name: "y"})
	if err != nil {
		return err
	}
	fmt.Fprintf(&src, "\t\t\tout[y*outStride+x] = uint16(%s)\n", body)
	src.WriteString("\t\t}\n\t}\n}\n")

	formatted, err := imports.Process(path, src.Bytes(), nil)
	if err != nil {
		return fmt.Errorf("stencil: formatting generated kernel: %w", err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return fmt.Errorf("stencil: writing generated kernel: %w", err)
	}
	return nil
}

// referencedBuffers returns every buffer the pipeline reads, in first-use
// order, following stage calls.
func (p *Pipeline) referencedBuffers() []*Buffer {
	var bufs []*Buffer
	seenBuf := map[*Buffer]bool{}
	seenFn := map[*Func]bool{p.fn: true}
	var scan func(e Expr)
	scan = func(e Expr) {
		walkExpr(e, func(e Expr) {
			switch n := e.(type) {
			case loadExpr:
				if !seenBuf[n.buf] {
					seenBuf[n.buf] = true
					bufs = append(bufs, n.buf)
				}
			case callExpr:
				if !seenFn[n.fn] && n.fn.defined {
					seenFn[n.fn] = true
					scan(n.fn.def)
				}
			}
		})
	}
	scan(p.fn.def)
	return bufs
}

// goExpr renders an expression as Go source, substituting index variables
// and textually inlining stage calls.
func goExpr(e Expr, subst map[string]string) (string, error) {
	switch n := e.(type) {
	case Var:
		s, ok := subst[n.name]
		if !ok {
			return "", fmt.Errorf("stencil: undefined var %q in generated kernel", n.name)
		}
		return s, nil
	case constExpr:
		return strconv.Itoa(n.v), nil
	case binExpr:
		a, err := goExpr(n.a, subst)
		if err != nil {
			return "", err
		}
		b, err := goExpr(n.b, subst)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %c %s)", a, n.op, b), nil
	case clampExpr:
		inner, err := goExpr(n.e, subst)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("min(max(%s, %d), %d)", inner, n.lo, n.hi), nil
	case loadExpr:
		xs, err := goExpr(n.x, subst)
		if err != nil {
			return "", err
		}
		ys, err := goExpr(n.y, subst)
		if err != nil {
			return "", err
		}
		id := identFor(n.buf.name)
		return fmt.Sprintf("int(%s[(%s)*%sStride+(%s)])", id, ys, id, xs), nil
	case callExpr:
		if !n.fn.defined {
			return "", fmt.Errorf("stencil: call to undefined stage %s in generated kernel", n.fn.name)
		}
		xs, err := goExpr(n.x, subst)
		if err != nil {
			return "", err
		}
		ys, err := goExpr(n.y, subst)
		if err != nil {
			return "", err
		}
		return goExpr(n.fn.def, map[string]string{n.fn.x.name: xs, n.fn.y.name: ys})
	}
	return "", fmt.Errorf("stencil: cannot render %T", e)
}

// identFor sanitizes a buffer name into a Go identifier.
func identFor(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "buf"
	}
	return sb.String()
}
