// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fold computes per-line fold (block) depth from a grammar's
// block-delimiter pairs, supplementing the core span-highlighting
// pipeline with the same structural information a code editor's
// gutter fold markers need.
//
// Grounded on the reference editor's BlockMap: a plain trimmed-prefix
// scan for each pair's start/end delimiter, tracking a stack of open
// block start lines. It deliberately does not consult token styles
// (a "{" inside a string or comment still opens a block), matching
// the original's behavior exactly.
package fold

import (
	"strings"

	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/lines"
)

// Map holds, for every line of a document, its block nesting depth,
// the line index of the nearest enclosing block's start (if any), and
// the start->end line pairing of every fully-closed block.
type Map struct {
	// Depths[i] is the number of blocks still open when line i begins.
	Depths []int
	// Parents[i] is the line index of the innermost block enclosing
	// line i, or -1 if line i is at top level.
	Parents []int
	// Scopes maps a block's start line to its end line, for blocks
	// that were closed somewhere in the document.
	Scopes map[int]int
}

// Build computes a Map for buf's current contents using rule's
// BlockPairs. It returns an empty Map if rule declares no block
// pairs, mirroring the original's early-out.
func Build(rule *grammar.SyntaxRule, buf *lines.Buffer) Map {
	if len(rule.BlockPairs) == 0 {
		return Map{}
	}
	n := buf.NumLines()
	m := Map{
		Depths:  make([]int, n),
		Parents: make([]int, n),
		Scopes:  make(map[int]int),
	}
	var stack []int
	for i := 0; i < n; i++ {
		text, _ := buf.Line(i)
		trimmed := strings.TrimSpace(string(text))

		matchedEnd := false
		for _, p := range rule.BlockPairs {
			if p.End != "" && strings.HasPrefix(trimmed, p.End) {
				matchedEnd = true
				break
			}
		}

		parent := -1
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}
		m.Parents[i] = parent
		m.Depths[i] = len(stack)

		if matchedEnd && len(stack) > 0 {
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			m.Scopes[start] = i
		}

		matchedStart := false
		for _, p := range rule.BlockPairs {
			if p.Start != "" && strings.HasPrefix(trimmed, p.Start) {
				matchedStart = true
				break
			}
		}
		if matchedStart {
			stack = append(stack, i)
		}
	}
	return m
}
