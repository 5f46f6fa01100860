// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lines

import (
	"cogentcore.org/highlight/text/textpos"
)

// CharIndexToPosition converts a document-wide character offset into
// a Position. Column and Index are both filled in; Index is simply
// idx, with a negative idx clamped to 0 (an idx past the end is kept
// as given, while Column is clamped to the last line's length).
func (b *Buffer) CharIndexToPosition(idx int) textpos.Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx < 0 {
		idx = 0
	}
	acc := 0
	for i, l := range b.lines {
		next := acc + len(l) + b.endings[i].Width()
		if idx < next || i == len(b.lines)-1 {
			col := idx - acc
			if col > len(l) {
				col = len(l)
			}
			return textpos.Position{Line: int32(i), Column: int32(col), Index: int32(idx)}
		}
		acc = next
	}
	return textpos.Position{}
}

// Patch replaces the text in rng with newText and reports the signed
// line_change §4.6 step 1 requires: the net change in total line
// count. An out-of-range edit is clamped to the buffer's bounds, per
// §7's "no exceptions escape" rule for a well-formed caller.
func (b *Buffer) Patch(rng textpos.Range, newText []rune) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	startLine := clampLine(int(rng.Start.Line), len(b.lines))
	endLine := clampLine(int(rng.End.Line), len(b.lines))
	startCol := clampCol(int(rng.Start.Column), len(b.lines[startLine]))
	endCol := clampCol(int(rng.End.Column), len(b.lines[endLine]))

	before := append([]rune{}, b.lines[startLine][:startCol]...)
	after := append([]rune{}, b.lines[endLine][endCol:]...)
	endEnding := b.endings[endLine]

	replacement := make([]rune, 0, len(before)+len(newText)+len(after))
	replacement = append(replacement, before...)
	replacement = append(replacement, newText...)
	replacement = append(replacement, after...)

	newLines, newEndings := splitLines(replacement)
	// the replacement's final piece inherits the original end line's
	// ending (it is what used to terminate "after").
	newEndings[len(newEndings)-1] = endEnding

	oldCount := len(b.lines)
	head := append([][]rune{}, b.lines[:startLine]...)
	tail := append([][]rune{}, b.lines[endLine+1:]...)
	headEnd := append([]Ending{}, b.endings[:startLine]...)
	tailEnd := append([]Ending{}, b.endings[endLine+1:]...)

	b.lines = append(append(head, newLines...), tail...)
	b.endings = append(append(headEnd, newEndings...), tailEnd...)

	return len(b.lines) - oldCount
}

func clampLine(l, n int) int {
	if l < 0 {
		return 0
	}
	if l >= n {
		return n - 1
	}
	return l
}

func clampCol(c, n int) int {
	if c < 0 {
		return 0
	}
	if c > n {
		return n
	}
	return c
}
