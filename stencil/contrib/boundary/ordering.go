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

import "fmt"

// refTolerance is how many times slower than the unclamped baseline the
// fused clamp may be. The kernel is trivial, so per-call overhead dominates
// and the bound is deliberately loose; a heavier kernel would tighten it.
const refTolerance = 5.0

// Timings holds the four measured trial times in milliseconds.
type Timings struct {
	Ref         float64 // unclamped baseline
	Clamped     float64 // fused clamped vector load
	ScalarInner float64 // load scalarized per vector group
	ScalarOuter float64 // row padded with scalar code
}

func (t Timings) String() string {
	return fmt.Sprintf("Unclamped: %f\nClamped: %f\nScalarize the load: %f\nPad the input: %f",
		t.Ref, t.Clamped, t.ScalarInner, t.ScalarOuter)
}

// CheckOrdering decides whether the measured times are consistent with the
// expected cost of a fused vector clamp: within refTolerance of the
// unclamped baseline, and no slower than either scalarized alternative
// (vector clamping should never lose to scalarizing the same work). The
// returned error carries all four timings.
func CheckOrdering(t Timings) error {
	if t.Clamped > refTolerance*t.Ref || t.Clamped > t.ScalarInner || t.Clamped > t.ScalarOuter {
		return fmt.Errorf("clamped load timings suspicious:\n%s", t)
	}
	return nil
}
