// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textpos

import (
	"fmt"
	"strings"
)

// Edit describes a single patch to line-based text: the Range of the
// existing text being replaced, and the NewText replacing it. Either
// side may be empty: a nil NewText is a pure deletion, a Range with
// Start==End is a pure insertion.
type Edit struct {
	// Range is the span of existing text being replaced.
	Range Range

	// NewText is the replacement text, as a flat rune slice. Newlines
	// within it introduce new lines in the document.
	NewText []rune
}

// NewEdit returns an Edit replacing rng with text.
func NewEdit(rng Range, text []rune) Edit {
	return Edit{Range: rng, NewText: text}
}

// LineDelta returns the net change in line count this edit produces:
// the number of newlines in NewText minus the number of lines removed
// (Range.End.Line - Range.Start.Line).
func (te Edit) LineDelta() int32 {
	removed := te.Range.End.Line - te.Range.Start.Line
	var inserted int32
	for _, r := range te.NewText {
		if r == '\n' {
			inserted++
		}
	}
	return inserted - removed
}

func (te Edit) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s -> %q", te.Range, string(te.NewText))
	return b.String()
}
