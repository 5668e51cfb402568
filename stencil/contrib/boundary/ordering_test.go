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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOrderingPasses(t *testing.T) {
	cases := []Timings{
		{Ref: 1.0, Clamped: 3.0, ScalarInner: 4.0, ScalarOuter: 5.0},
		{Ref: 1.0, Clamped: 5.0, ScalarInner: 5.0, ScalarOuter: 5.0}, // bounds are strict
		{Ref: 2.0, Clamped: 2.0, ScalarInner: 2.0, ScalarOuter: 2.0},
		{Ref: 10.0, Clamped: 1.0, ScalarInner: 50.0, ScalarOuter: 50.0},
	}
	for _, c := range cases {
		assert.NoError(t, CheckOrdering(c), "%+v", c)
	}
}

func TestCheckOrderingFailsEachInequality(t *testing.T) {
	cases := []struct {
		name string
		t    Timings
	}{
		{"exceeds 5x baseline", Timings{Ref: 1.0, Clamped: 6.0, ScalarInner: 10.0, ScalarOuter: 10.0}},
		{"slower than scalarized load", Timings{Ref: 1.0, Clamped: 4.1, ScalarInner: 4.0, ScalarOuter: 5.0}},
		{"slower than padded input", Timings{Ref: 1.0, Clamped: 4.1, ScalarInner: 5.0, ScalarOuter: 4.0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckOrdering(c.t)
			assert.Error(t, err)
			// The failure report carries all four timings.
			assert.Contains(t, err.Error(), "Unclamped:")
			assert.Contains(t, err.Error(), "Clamped:")
			assert.Contains(t, err.Error(), "Scalarize the load:")
			assert.Contains(t, err.Error(), "Pad the input:")
		})
	}
}

func TestTimingsString(t *testing.T) {
	s := Timings{Ref: 1, Clamped: 2, ScalarInner: 3, ScalarOuter: 4}.String()
	assert.Contains(t, s, "Unclamped: 1.0")
	assert.Contains(t, s, "Pad the input: 4.0")
}
