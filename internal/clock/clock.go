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

// Package clock provides the monotonic millisecond timer used for trial
// timing. Go's runtime already selects the platform clock source, so one
// implementation serves every OS.
package clock

import "time"

var epoch = time.Now()

// Millis returns monotonic milliseconds since process start. Only
// differences between two readings are meaningful.
func Millis() float64 {
	return float64(time.Since(epoch)) / float64(time.Millisecond)
}
