// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/textpos"
)

// chromaLexerFor resolves a chroma lexer for ext, grounded directly
// on the teacher's Highlighter's fallback path (MatchMimeType/Match):
// when no compiled grammar claims a document's extension, a real
// language-aware lexer is still better than none.
func chromaLexerFor(ext string) chroma.Lexer {
	l := lexers.Match("file" + ext)
	if l == nil {
		l = lexers.MatchMimeType(ext)
	}
	return l
}

// chromaSpansForLine tokenizes one line's text with l and adapts
// chroma's token stream into TokenSpans, mirroring the teacher's
// chromaTagsForLine loop over chroma.Token values. Chroma has no
// incremental API of its own, so this fallback path is always a full
// re-tokenization of the line, never incremental — documented in
// DESIGN.md rather than pretending otherwise.
func chromaSpansForLine(l chroma.Lexer, line int32, startCharOffset int32, text string) []highlighting.TokenSpan {
	iter, err := l.Tokenise(nil, text+"\n")
	if err != nil {
		return nil
	}
	var spans []highlighting.TokenSpan
	col := int32(0)
	for _, tok := range iter.Tokens() {
		value := strings.TrimSuffix(tok.Value, "\n")
		runeLen := int32(len([]rune(value)))
		if runeLen == 0 {
			continue
		}
		span := highlighting.TokenSpan{
			Range: textpos.Range{
				Start: textpos.Position{Line: line, Column: col, Index: startCharOffset + col},
				End:   textpos.Position{Line: line, Column: col + runeLen, Index: startCharOffset + col + runeLen},
			},
			StyleID:   int32(tok.Type),
			GotoState: grammar.NoGoto,
		}
		if len(spans) > 0 {
			prev := &spans[len(spans)-1]
			if prev.Range.End.Column == span.Range.Start.Column && prev.StyleID == span.StyleID {
				prev.Range.End = span.Range.End
				col += runeLen
				continue
			}
		}
		spans = append(spans, span)
		col += runeLen
	}
	return spans
}
