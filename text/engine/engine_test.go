// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/highlight/text/analyze"
	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/lexer"
	"cogentcore.org/highlight/text/lines"
)

func TestLoadConfigTOML(t *testing.T) {
	data := []byte(`
inline_style = true
show_index = true
chroma_fallback = true
grammar_dirs = ["grammars"]
default_style = "dark"
`)
	cfg, err := LoadConfig(data)
	require.NoError(t, err)
	assert.True(t, cfg.InlineStyle)
	assert.True(t, cfg.ShowIndex)
	assert.True(t, cfg.ChromaFallback)
	assert.Equal(t, []string{"grammars"}, cfg.GrammarDirs)
	assert.Equal(t, "dark", cfg.DefaultStyle)

	ac := cfg.ToAnalyzeConfig()
	assert.True(t, ac.ShowIndex)
	assert.True(t, ac.Config.InlineStyle)
}

func TestRegisterBuiltinsAndLookup(t *testing.T) {
	r := NewRegistry(false)
	require.NoError(t, RegisterBuiltins(r))

	rule, ok := r.Lookup(".json")
	require.True(t, ok)
	assert.Equal(t, "JSON", rule.Name)

	rule, ok = r.Lookup("cpp")
	require.True(t, ok)
	assert.Equal(t, "C++", rule.Name)

	_, ok = r.Lookup(".nope")
	assert.False(t, ok)
}

func TestAnalyzeWithFallbackUsesBuiltinGrammar(t *testing.T) {
	r := NewRegistry(false)
	require.NoError(t, RegisterBuiltins(r))

	doc, err := r.AnalyzeWithFallback(".json", `{"a": 1}`, lexer.Config{})
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)
	assert.NotEmpty(t, doc.Lines[0].Spans)
}

func TestAnalyzeWithFallbackMissingGrammar(t *testing.T) {
	r := NewRegistry(false)
	_, err := r.AnalyzeWithFallback(".nope", "x", lexer.Config{})
	assert.ErrorIs(t, err, ErrGrammarMissing)
}

func TestAnalyzeAllRunsConcurrently(t *testing.T) {
	r := NewRegistry(false)
	require.NoError(t, RegisterBuiltins(r))

	items := []BatchItem{
		{Ext: ".json", Text: `{"a": 1}`},
		{Ext: ".toml", Text: "a = 1\n[b]\n"},
		{Ext: ".nope", Text: "x"},
	}
	results := r.AnalyzeAll(context.Background(), items, lexer.Config{})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].Highlight.Lines[0].Spans)
	assert.NoError(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, ErrGrammarMissing)
}

func TestFoldMap(t *testing.T) {
	const src = `{
  "name": "Braces",
  "blockPairs": [ { "start": "{", "end": "}" } ],
  "styles": [ { "name": "punctuation", "foreground": "#fff" } ],
  "states": {
    "default": [ { "pattern": "[{}]", "style": "punctuation" } ]
  }
}`
	rule, err := grammar.Compile([]byte(src), nil)
	require.NoError(t, err)

	r := NewRegistry(false)
	r.Register(rule)
	buf := lines.NewBuffer("{\n  {\n  }\n}\n")
	_, err = r.LoadDocument("doc1", "Braces", buf, analyze.Config{})
	require.NoError(t, err)

	m, ok := r.FoldMap("doc1")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 1, 0}, m.Depths)

	_, ok = r.FoldMap("unknown")
	assert.False(t, ok)
}

func TestApplyStyleOverridesInlineLookup(t *testing.T) {
	r := NewRegistry(false)
	require.NoError(t, RegisterBuiltins(r))
	rule, ok := r.Lookup(".json")
	require.True(t, ok)

	theme := highlighting.Style{
		0: {Foreground: "#ff0000"}, // punctuation, overriding the built-in's own color
	}
	ApplyStyle(rule, theme)
	assert.Equal(t, "color:#ff0000;", rule.InlineStyleLookup[0])

	doc, err := r.AnalyzeWithFallback(".json", `{"a": 1}`, lexer.Config{InlineStyle: true})
	require.NoError(t, err)
	require.NotEmpty(t, doc.Lines[0].Spans)
	found := false
	for _, sp := range doc.Lines[0].Spans {
		if sp.HasInlineStyle {
			found = true
		}
	}
	assert.True(t, found)
}
