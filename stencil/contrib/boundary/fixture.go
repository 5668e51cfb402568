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
	"math/rand/v2"

	"github.com/ajroetker/go-stencil/stencil"
)

const (
	// MinIndex and MaxIndex bound the input columns considered valid. Every
	// clamped tap index is rewritten into this closed interval. The oracle
	// and the variant builder share these constants; they must never
	// diverge or verification stops meaning anything.
	MinIndex = 1
	MaxIndex = 1020

	// SampleMask keeps samples to 12 significant bits so 3*a + b stays
	// exact and overflow-free in uint16.
	SampleMask = 0xfff

	// Lanes is the vector-group width every variant is scheduled with.
	Lanes = 8

	// TimedReps is the fixed number of timed realizations per trial.
	TimedReps = 10
)

// MakeFixture allocates the shared trial buffers: an input of
// (width+extra)×height filled with masked pseudo-random samples, and a
// zeroed output of width×height. The caller owns both and lends them to
// trials; the input is read-only, the output is overwritten by every
// realization.
func MakeFixture(width, height, extra int) (in, out *stencil.Buffer) {
	in = stencil.NewBuffer("in", width+extra, height)
	in.Fill(func(x, y int) uint16 {
		return uint16(rand.Uint32()) & SampleMask
	})
	out = stencil.NewBuffer("out", width, height)
	return in, out
}
