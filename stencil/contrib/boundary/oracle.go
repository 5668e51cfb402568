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

import "github.com/ajroetker/go-stencil/stencil"

// clampIndex rewrites i to the nearest valid input column.
func clampIndex(i int) int {
	return min(max(i, MinIndex), MaxIndex)
}

// Oracle computes the expected output at (x, y) with scalar code: both tap
// indices clamped independently into [MinIndex, MaxIndex], then combined as
// 3*a + b in uint16 arithmetic. This must match the compiled clamped
// variants bit for bit.
func Oracle(in *stencil.Buffer, x, y int) uint16 {
	a := in.At(clampIndex(x), y)
	b := in.At(clampIndex(x+1), y)
	return 3*a + b
}
