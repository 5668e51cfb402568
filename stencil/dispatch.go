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

import "os"

// DispatchLevel identifies the vector target detected at startup. Levels
// are ordered so callers can compare with < and >=.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchNEON
	DispatchAVX2
	DispatchAVX512
)

var (
	currentLevel DispatchLevel
	currentWidth int // vector register width in bytes
	currentName  string
)

// CurrentLevel returns the detected dispatch level.
func CurrentLevel() DispatchLevel { return currentLevel }

// CurrentWidth returns the detected vector width in bytes.
func CurrentWidth() int { return currentWidth }

// CurrentName returns the detected target name (e.g. "avx2", "scalar").
func CurrentName() string { return currentName }

// NaturalLanes returns how many uint16 lanes fit the detected vector width.
// Schedules may pin any lane count explicitly; this is the advisory default.
func NaturalLanes() int { return currentWidth / 2 }

// NoVecEnv reports whether vectorized dispatch is disabled via the
// STENCIL_NOVEC environment variable.
func NoVecEnv() bool {
	return os.Getenv("STENCIL_NOVEC") == "1"
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16 // keep 16-byte groups even in scalar mode for consistency
	currentName = "scalar"
}
