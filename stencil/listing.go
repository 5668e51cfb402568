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
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// symbolName turns a stage name like "f_scalar_inner" into an exported
// symbol like "FScalarInner".
func symbolName(name string) string {
	title := cases.Title(language.English)
	parts := strings.Split(name, "_")
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(title.String(p))
	}
	return sb.String()
}

// EmitListing writes a readable rendition of the lowered loop nest to
// <dir>/<name>.s. The listing is a diagnostic artifact: it shows where the
// schedule placed each materialization, not executable assembly.
func (p *Pipeline) EmitListing(dir string) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "; go-stencil listing for %s\n", p.fn.name)
	fmt.Fprintf(&buf, "; target: %s (%d-byte vectors), lanes: %d, parallel rows: %v\n",
		currentName, currentWidth, p.lanes, p.parallel)
	buf.WriteString("; definition:\n")
	for _, line := range strings.Split(strings.TrimRight(p.Definition(), "\n"), "\n") {
		fmt.Fprintf(&buf, ";   %s\n", line)
	}
	buf.WriteByte('\n')

	fmt.Fprintf(&buf, "%s:\n", symbolName(p.fn.name))
	loop := "  loop.y   y = 0 .. height:"
	if p.parallel {
		loop += "          ; parallel workers"
	}
	buf.WriteString(loop + "\n")
	for _, m := range p.rowMats {
		fmt.Fprintf(&buf, "    mat.row   %-14s [0%+d .. width-1%+d] -> scratch%d   ; scalar pad\n",
			m.fn.name, m.fp.lo, m.fp.hi, m.slot)
	}
	if p.lanes > 1 {
		fmt.Fprintf(&buf, "    loop.x   x = 0 .. width step %d:   ; vectorized\n", p.lanes)
	} else {
		buf.WriteString("    loop.x   x = 0 .. width:\n")
	}
	for _, m := range p.groupMats {
		fmt.Fprintf(&buf, "      mat.group %-14s [x%+d .. x+%d] -> scratch%d   ; scalar, %d elems/group\n",
			m.fn.name, m.fp.lo, p.lanes-1+m.fp.hi, m.slot, p.lanes+m.fp.spread())
	}
	if p.lanes > 1 {
		fmt.Fprintf(&buf, "      vgroup  lane = 0 .. %d:\n", p.lanes)
		fmt.Fprintf(&buf, "        out[x+lane, y] = %s\n", p.fn.def)
		fmt.Fprintf(&buf, "      vstore  out[x .. x+%d, y]\n", p.lanes)
	} else {
		fmt.Fprintf(&buf, "      out[x, y] = %s\n", p.fn.def)
	}
	buf.WriteString("  ret\n")

	path := filepath.Join(dir, p.fn.name+".s")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("stencil: writing listing: %w", err)
	}
	return nil
}
