// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/lines"
)

func TestBuildNoBlockPairs(t *testing.T) {
	rule := &grammar.SyntaxRule{Name: "none"}
	buf := lines.NewBuffer("a\nb\n")
	m := Build(rule, buf)
	assert.Nil(t, m.Depths)
}

func TestBuildNestedBraces(t *testing.T) {
	rule := &grammar.SyntaxRule{
		Name:       "Braces",
		BlockPairs: []grammar.BlockPair{{Start: "{", End: "}"}},
	}
	// Block delimiters are matched at the start of each trimmed line,
	// same as the reference BlockMap, so each brace sits alone on its
	// own line here.
	buf := lines.NewBuffer("{\n  {\n    c\n  }\n}\n")
	m := Build(rule, buf)
	require.Len(t, m.Depths, 6)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 0}, m.Depths)
	assert.Equal(t, -1, m.Parents[0])
	assert.Equal(t, 0, m.Parents[1])
	assert.Equal(t, 1, m.Parents[2])
	assert.Equal(t, 1, m.Parents[3])
	assert.Equal(t, 0, m.Parents[4])
	assert.Equal(t, 3, m.Scopes[1])
	assert.Equal(t, 4, m.Scopes[0])
}
