// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/lexer"
	"cogentcore.org/highlight/text/lines"
	"cogentcore.org/highlight/text/textpos"
)

const keywordGrammarJSON = `{
  "name": "Test",
  "fileExtensions": [".t"],
  "styles": [
    { "name": "keyword", "foreground": "#569cd6" }
  ],
  "states": {
    "default": [
      { "pattern": "\\bif\\b" , "style": "keyword" }
    ]
  }
}`

const blockCommentGrammarJSON = `{
  "name": "BlockC",
  "styles": [
    { "name": "comment", "foreground": "#6a9955" }
  ],
  "states": {
    "default": [
      { "pattern": "/\\*", "style": "comment", "state": "block" }
    ],
    "block": [
      { "pattern": "\\*/", "style": "comment", "state": "default" },
      { "onLineEndState": "block" }
    ]
  }
}`

const subGrammarJSON = `{
  "name": "SubTest",
  "styles": [
    { "name": "ident", "foreground": "#1" },
    { "name": "digit", "foreground": "#2" }
  ],
  "states": {
    "default": [
      {
        "pattern": "[a-z0-9]+",
        "style": "ident",
        "subState": {
          "rules": [
            { "pattern": "[0-9]+", "style": "digit" }
          ]
        }
      }
    ]
  }
}`

func TestScenarioEmptyText(t *testing.T) {
	rule, err := grammar.Compile([]byte(keywordGrammarJSON), nil)
	require.NoError(t, err)
	buf := lines.NewBuffer("")
	doc, _ := Analyze(rule, buf, lexer.Config{})
	require.Len(t, doc.Lines, 1)
	assert.Empty(t, doc.Lines[0].Spans)
}

func TestScenarioSingleLineKeyword(t *testing.T) {
	rule, err := grammar.Compile([]byte(keywordGrammarJSON), nil)
	require.NoError(t, err)
	buf := lines.NewBuffer("if x")
	doc, _ := Analyze(rule, buf, lexer.Config{})
	require.Len(t, doc.Lines, 1)
	require.Len(t, doc.Lines[0].Spans, 1)
	sp := doc.Lines[0].Spans[0]
	assert.Equal(t, int32(0), sp.Range.Start.Column)
	assert.Equal(t, int32(2), sp.Range.End.Column)
	assert.Equal(t, int32(0), sp.StyleID)
	assert.Equal(t, int32(0), sp.State)
	assert.Equal(t, grammar.NoGoto, sp.GotoState)
}

func TestScenarioTrailingNewline(t *testing.T) {
	rule, err := grammar.Compile([]byte(keywordGrammarJSON), nil)
	require.NoError(t, err)
	buf := lines.NewBuffer("if\n")
	doc, _ := Analyze(rule, buf, lexer.Config{})
	require.Len(t, doc.Lines, 2)
	assert.Len(t, doc.Lines[0].Spans, 1)
	assert.Empty(t, doc.Lines[1].Spans)
}

func TestScenarioBlockCommentAcrossLines(t *testing.T) {
	rule, err := grammar.Compile([]byte(blockCommentGrammarJSON), nil)
	require.NoError(t, err)
	buf := lines.NewBuffer("/*\nhi\n*/")
	doc, states := Analyze(rule, buf, lexer.Config{})
	require.Len(t, doc.Lines, 3)
	assert.Equal(t, []int32{1, 1, 0}, states)
	assert.Len(t, doc.Lines[0].Spans, 1)
	assert.Empty(t, doc.Lines[1].Spans)
	assert.Len(t, doc.Lines[2].Spans, 1)
}

func TestScenarioIncrementalEquivalence(t *testing.T) {
	rule, err := grammar.Compile([]byte(blockCommentGrammarJSON), nil)
	require.NoError(t, err)
	buf := lines.NewBuffer("/*\nhi\n*/")
	inc := NewIncremental(rule, buf, Config{})

	inc.ApplyEdit(textpos.NewEdit(textpos.NewRange(1, 0, 1, 2), []rune("hi there")))

	fullBuf := lines.NewBuffer("/*\nhi there\n*/")
	fullDoc, fullStates := Analyze(rule, fullBuf, lexer.Config{})

	assert.True(t, inc.Highlight.Equal(fullDoc))
	assert.Equal(t, fullStates, inc.S)
}

func TestScenarioSubGrammarTiling(t *testing.T) {
	rule, err := grammar.Compile([]byte(subGrammarJSON), nil)
	require.NoError(t, err)
	buf := lines.NewBuffer("abc123def")
	doc, _ := Analyze(rule, buf, lexer.Config{})
	require.Len(t, doc.Lines, 1)
	spans := doc.Lines[0].Spans
	require.Len(t, spans, 3)
	assert.Equal(t, int32(0), spans[0].Range.Start.Column)
	assert.Equal(t, int32(3), spans[0].Range.End.Column)
	assert.Equal(t, int32(0), spans[0].StyleID) // ident, declared first => id 0
	assert.Equal(t, int32(3), spans[1].Range.Start.Column)
	assert.Equal(t, int32(6), spans[1].Range.End.Column)
	assert.Equal(t, int32(1), spans[1].StyleID) // digit, declared second => id 1
	assert.Equal(t, int32(6), spans[2].Range.Start.Column)
	assert.Equal(t, int32(9), spans[2].Range.End.Column)
	assert.Equal(t, int32(0), spans[2].StyleID) // ident
}
