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
	"runtime"
	"sync"
	"sync/atomic"
)

// parallelRows runs fn(y) for every row in [0, rows) across a pool of
// workers. Rows are claimed with an atomic counter so uneven rows balance
// naturally. newWorker is called once per worker to build per-worker state;
// the returned row functions therefore never share mutable state.
func parallelRows(rows int, newWorker func() func(y int)) {
	workers := min(runtime.NumCPU(), rows)
	if workers <= 1 {
		fn := newWorker()
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn := newWorker()
			for {
				y := int(next.Add(1)) - 1
				if y >= rows {
					return
				}
				fn(y)
			}
		}()
	}
	wg.Wait()
}
