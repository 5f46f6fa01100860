// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strings"

	"cogentcore.org/highlight/text/analyze"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/lexer"
)

// AnalyzeWithFallback runs a full analysis of text, using a compiled
// grammar registered for ext if one exists, else chroma if the
// registry was built with fallback enabled, else ErrGrammarMissing.
//
// Unlike LoadDocument's incremental path, this is always a full,
// stateless analysis: it has no document URI to cache state against,
// mirroring the teacher's MarkupTagsAll / chromaTagsAll split between
// a custom-grammar path and a chroma path.
func (r *Registry) AnalyzeWithFallback(ext string, text string, cfg lexer.Config) (highlighting.DocumentHighlight, error) {
	if rule, ok := r.Lookup(ext); ok {
		return analyze.AnalyzeText(rule, text, cfg), nil
	}
	if !r.fallback {
		return highlighting.DocumentHighlight{}, ErrGrammarMissing
	}
	l := chromaLexerFor(ext)
	if l == nil {
		return highlighting.DocumentHighlight{}, ErrGrammarMissing
	}
	lns := strings.Split(text, "\n")
	doc := highlighting.DocumentHighlight{Lines: make([]highlighting.LineHighlight, len(lns))}
	offset := int32(0)
	for i, ln := range lns {
		spans := chromaSpansForLine(l, int32(i), offset, ln)
		doc.Lines[i] = highlighting.LineHighlight{Spans: spans}
		offset += int32(len([]rune(ln))) + 1
	}
	return doc, nil
}
