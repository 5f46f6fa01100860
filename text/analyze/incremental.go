// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyze

import (
	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/lexer"
	"cogentcore.org/highlight/text/lines"
	"cogentcore.org/highlight/text/textpos"
)

// Incremental is the stateful per-document analyzer of §4.6: it owns
// the document buffer, the end-of-line state vector S, and the
// current DocumentHighlight, and applies patches by re-tokenizing
// only as far forward as necessary.
//
// Per §5, an Incremental has exclusive mutable ownership of its state;
// callers must serialize edits to one document (no internal locking —
// that is the caller's job, same as the teacher's Lines requires
// callers to go through its own Lock/Unlock).
type Incremental struct {
	Rule   *grammar.SyntaxRule
	Buffer *lines.Buffer
	Config Config

	S         []int32
	Highlight highlighting.DocumentHighlight
}

// Config extends lexer.Config with the incremental analyzer's own
// show_index flag from §6.
type Config struct {
	lexer.Config
	ShowIndex bool
}

// NewIncremental builds an Incremental by running a full analysis
// over buf, per the lifecycle note in §3 ("a document analyzer owns
// the state vector and the DocumentHighlight").
func NewIncremental(rule *grammar.SyntaxRule, buf *lines.Buffer, cfg Config) *Incremental {
	doc, states := Analyze(rule, buf, cfg.Config)
	return &Incremental{Rule: rule, Buffer: buf, Config: cfg, S: states, Highlight: doc}
}

// ApplyEdit implements analyze_incremental per §4.6, taking the exact
// {Range, NewText} bundle §4.6 step 1 consumes.
func (inc *Incremental) ApplyEdit(edit textpos.Edit) {
	// Step 1: patch the document.
	lineChange := inc.Buffer.Patch(edit.Range, edit.NewText)

	changeStart := int(edit.Range.Start.Line)
	changeEnd := int(edit.Range.End.Line) + lineChange

	// Step 2: resize S and highlight.lines.
	switch {
	case lineChange < 0:
		eraseFrom := int(edit.Range.End.Line) + lineChange + 1
		eraseTo := int(edit.Range.End.Line) // inclusive
		inc.S = append(inc.S[:eraseFrom], inc.S[eraseTo+1:]...)
		inc.Highlight.Lines = append(inc.Highlight.Lines[:eraseFrom], inc.Highlight.Lines[eraseTo+1:]...)
	case lineChange > 0:
		at := int(edit.Range.End.Line) + 1
		newS := make([]int32, lineChange)
		newLines := make([]highlighting.LineHighlight, lineChange)
		tailS := append([]int32{}, inc.S[at:]...)
		tailLines := append([]highlighting.LineHighlight{}, inc.Highlight.Lines[at:]...)
		inc.S = append(inc.S[:at], append(newS, tailS...)...)
		inc.Highlight.Lines = append(inc.Highlight.Lines[:at], append(newLines, tailLines...)...)
	}

	// Step 3: seed re-tokenization.
	currentState := grammar.DefaultStateID
	if changeStart > 0 {
		currentState = inc.S[changeStart-1]
	}
	lineStartIndex := inc.Buffer.CharIndexOfLine(changeStart)
	line := changeStart
	totalLines := inc.Buffer.NumLines()

	// Step 4: re-tokenize forward until stable.
	for line < totalLines {
		oldState := inc.S[line]
		oldHighlight := inc.Highlight.Lines[line]

		text, ending := inc.Buffer.Line(line)
		result := lexer.TokenizeLine(inc.Rule, text, int32(line), currentState, int32(lineStartIndex), inc.Config.Config)
		newHighlight := highlighting.LineHighlight{Spans: result.Spans}

		inc.S[line] = result.EndState
		inc.Highlight.Lines[line] = newHighlight

		currentState = result.EndState
		lineStartIndex += result.CharCount + ending.Width()

		stable := line > changeEnd && oldState == result.EndState && oldHighlight.Equal(newHighlight)
		line++
		if stable {
			break
		}
	}

	// Step 5: trailing index fix-up.
	if inc.Config.ShowIndex {
		inc.fixupTrailingIndices(line, lineStartIndex)
	}
}

// fixupTrailingIndices walks the remaining, untouched lines adjusting
// each span's range.start/end.index to reflect any upstream shift in
// document-wide character offsets; columns need no adjustment.
func (inc *Incremental) fixupTrailingIndices(fromLine, lineStartIndex int) {
	for line := fromLine; line < inc.Buffer.NumLines(); line++ {
		lh := inc.Highlight.Lines[line]
		for i := range lh.Spans {
			sp := &lh.Spans[i]
			sp.Range.Start.Index = int32(lineStartIndex) + sp.Range.Start.Column
			sp.Range.End.Index = int32(lineStartIndex) + sp.Range.End.Column
		}
		_, ending := inc.Buffer.Line(line)
		lineStartIndex += inc.Buffer.LineCharCount(line) + ending.Width()
	}
}
