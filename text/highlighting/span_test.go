// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/highlight/text/textpos"
)

func TestTokenSpanEqualIgnoresText(t *testing.T) {
	a := TokenSpan{Range: textpos.NewRange(0, 0, 0, 2), StyleID: 1, GotoState: -1, MatchedText: "if", HasMatchedText: true}
	b := TokenSpan{Range: textpos.NewRange(0, 0, 0, 2), StyleID: 1, GotoState: -1}
	assert.True(t, a.Equal(b))
}

func TestLineHighlightEqual(t *testing.T) {
	a := LineHighlight{Spans: []TokenSpan{{Range: textpos.NewRange(0, 0, 0, 1), StyleID: 2, GotoState: -1}}}
	b := LineHighlight{Spans: []TokenSpan{{Range: textpos.NewRange(0, 0, 0, 1), StyleID: 2, GotoState: -1}}}
	assert.True(t, a.Equal(b))

	c := LineHighlight{}
	assert.False(t, a.Equal(c))
}
