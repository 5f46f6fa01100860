// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analyze implements the document-level analyzers: a
// stateless full-document pass and a stateful incremental analyzer
// that re-tokenizes only the lines a patch could have affected.
package analyze

import (
	"strings"

	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/lexer"
	"cogentcore.org/highlight/text/lines"
)

// Analyze runs a full-document pass over buf per §4.4, threading
// current_state across lines and returning both the resulting
// DocumentHighlight and the end-of-line state vector S.
func Analyze(rule *grammar.SyntaxRule, buf *lines.Buffer, cfg lexer.Config) (highlighting.DocumentHighlight, []int32) {
	n := buf.NumLines()
	doc := highlighting.DocumentHighlight{Lines: make([]highlighting.LineHighlight, n)}
	states := make([]int32, n)

	currentState := grammar.DefaultStateID
	lineStartIndex := 0
	for i := 0; i < n; i++ {
		text, ending := buf.Line(i)
		result := lexer.TokenizeLine(rule, text, int32(i), currentState, int32(lineStartIndex), cfg)
		doc.Lines[i] = highlighting.LineHighlight{Spans: result.Spans}
		states[i] = result.EndState
		currentState = result.EndState
		lineStartIndex += result.CharCount + ending.Width()
	}
	return doc, states
}

// AnalyzeText is the stateless entry point for a raw text string,
// implementing the text-mode splitter of §4.4: split on "\n", strip a
// trailing "\r", and always tokenize a final empty line after a
// trailing "\n".
func AnalyzeText(rule *grammar.SyntaxRule, text string, cfg lexer.Config) highlighting.DocumentHighlight {
	parts := strings.Split(text, "\n")
	doc := highlighting.DocumentHighlight{Lines: make([]highlighting.LineHighlight, len(parts))}

	currentState := grammar.DefaultStateID
	startCharOffset := 0
	for i, p := range parts {
		hasCR := strings.HasSuffix(p, "\r")
		if hasCR {
			p = strings.TrimSuffix(p, "\r")
		}
		line := []rune(p)
		result := lexer.TokenizeLine(rule, line, int32(i), currentState, int32(startCharOffset), cfg)
		doc.Lines[i] = highlighting.LineHighlight{Spans: result.Spans}
		currentState = result.EndState
		sep := 1 // the '\n' consumed by strings.Split; harmless on the final piece, which has no successor
		if hasCR {
			sep++
		}
		startCharOffset += result.CharCount + sep
	}
	return doc
}
