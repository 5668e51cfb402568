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

// Clampbench compares four schedules of a boundary-clamped two-tap kernel:
// an unclamped baseline, the clamp fused into the vector body, the clamp
// scalarized per vector group, and the clamp padded per row. Each variant
// is compiled, verified against a scalar oracle (except the baseline),
// and timed; the program exits non-zero if any variant is wrong or the
// timings fall outside the expected ordering.
package main

import (
	"fmt"
	"os"

	"github.com/ajroetker/go-stencil/stencil"
	"github.com/ajroetker/go-stencil/stencil/contrib/boundary"
)

const (
	width  = 1024
	height = 320
	extra  = 8 // spare input columns so the x+1 tap stays allocated
)

func main() {
	fmt.Printf("clampbench: boundary clamp scheduling comparison\n")
	fmt.Printf("target: %s (%d-byte vectors), %d lanes, %dx%d\n\n",
		stencil.CurrentName(), stencil.CurrentWidth(), boundary.Lanes, width, height)

	in, out := boundary.MakeFixture(width, height, extra)

	var t boundary.Timings
	slots := map[boundary.Strategy]*float64{
		boundary.Unclamped:        &t.Ref,
		boundary.FusedClamp:       &t.Clamped,
		boundary.ScalarInnerClamp: &t.ScalarInner,
		boundary.ScalarOuterClamp: &t.ScalarOuter,
	}

	for _, s := range boundary.Strategies {
		p, err := boundary.Build(in, s)
		if err != nil {
			fmt.Printf("%s: %v\n", s.PipelineName(), err)
			os.Exit(1)
		}
		check := s != boundary.Unclamped
		ms, err := boundary.RunTrial(p, in, out, check)
		if err != nil {
			// A mismatch makes the remaining trials meaningless.
			fmt.Printf("%v\n", err)
			os.Exit(1)
		}
		*slots[s] = ms
		fmt.Printf("%-20s %10.3f ms  (%s)\n", s.PipelineName(), ms, s)
	}

	fmt.Println()
	if err := boundary.CheckOrdering(t); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	fmt.Println("Success!")
}
