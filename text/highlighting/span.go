// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highlighting defines the result containers the tokenizer
// and analyzers produce: TokenSpan, LineHighlight, DocumentHighlight,
// and the style-id lookup they reference at emission time.
package highlighting

import "cogentcore.org/highlight/text/textpos"

// TokenSpan is one styled span of a line, annotated with the lexer
// state it was produced in and the state it transitions to, if any.
//
// Equality (see Equal) is structural across Range, StyleID, State and
// GotoState only: MatchedText and InlineStyle are informational and
// are deliberately excluded, since the merge invariant (§4.5) never
// redefines a merged span's MatchedText.
type TokenSpan struct {
	Range     textpos.Range
	StyleID   int32
	State     int32
	GotoState int32

	MatchedText    string
	HasMatchedText bool

	InlineStyle    string
	HasInlineStyle bool
}

// Equal reports structural equality per the rule above.
func (s TokenSpan) Equal(o TokenSpan) bool {
	return s.Range == o.Range && s.StyleID == o.StyleID && s.State == o.State && s.GotoState == o.GotoState
}
