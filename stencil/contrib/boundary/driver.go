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

	"github.com/ajroetker/go-stencil/internal/clock"
	"github.com/ajroetker/go-stencil/stencil"
)

// MismatchError reports the first output element that differs from the
// oracle. A mismatch means the kernel is wrong, not slow; callers must not
// proceed to timing comparisons after one.
type MismatchError struct {
	Pipeline string
	X, Y     int
	Got      uint16
	Want     uint16
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: output(%d, %d) = %d instead of %d",
		e.Pipeline, e.X, e.Y, e.Got, e.Want)
}

// Verify checks every element of out against the oracle for the given
// input. It returns a *MismatchError for the first difference, scanning
// rows top to bottom.
func Verify(p *stencil.Pipeline, in, out *stencil.Buffer) error {
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			want := Oracle(in, x, y)
			if got := out.At(x, y); got != want {
				return &MismatchError{Pipeline: p.Name(), X: x, Y: y, Got: got, Want: want}
			}
		}
	}
	return nil
}

// RunTrial runs one variant's full trial: emit the listing artifact, one
// warm realization (keeps compile/cache cost out of the measurement), an
// optional full-buffer verification against the oracle, then TimedReps
// back-to-back realizations under the timer. The listing is written to the
// current directory as <pipeline>.s.
//
// The returned duration covers only the timed realizations. A verification
// failure returns a *MismatchError and skips timing entirely.
func RunTrial(p *stencil.Pipeline, in, out *stencil.Buffer, checkCorrectness bool) (float64, error) {
	if err := p.EmitListing("."); err != nil {
		return 0, err
	}

	p.Realize(out)

	if checkCorrectness {
		if err := Verify(p, in, out); err != nil {
			return 0, err
		}
	}

	start := clock.Millis()
	for i := 0; i < TimedReps; i++ {
		p.Realize(out)
	}
	return clock.Millis() - start, nil
}
