// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

// LineHighlight is the ordered sequence of TokenSpans covering the
// matched portions of one line. There is no requirement that spans
// tile the line: unmatched characters produce no span. Spans are
// ordered by start column and satisfy the merge invariant (§4.5): no
// two adjacent spans share both an end/start column boundary and a
// style id.
type LineHighlight struct {
	Spans []TokenSpan
}

// Equal reports whether two LineHighlights contain the same spans, in
// the same order, under TokenSpan.Equal.
func (l LineHighlight) Equal(o LineHighlight) bool {
	if len(l.Spans) != len(o.Spans) {
		return false
	}
	for i := range l.Spans {
		if !l.Spans[i].Equal(o.Spans[i]) {
			return false
		}
	}
	return true
}

// DocumentHighlight is the ordered sequence of LineHighlights, one
// per document line, including a trailing empty line when the text
// ends with a newline (§4.4).
type DocumentHighlight struct {
	Lines []LineHighlight
}

// Equal reports whether two DocumentHighlights are pairwise equal.
func (d DocumentHighlight) Equal(o DocumentHighlight) bool {
	if len(d.Lines) != len(o.Lines) {
		return false
	}
	for i := range d.Lines {
		if !d.Lines[i].Equal(o.Lines[i]) {
			return false
		}
	}
	return true
}
