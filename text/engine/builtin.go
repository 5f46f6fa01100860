// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"cogentcore.org/highlight/text/grammar"
)

// builtinGrammars holds the JSON source of the grammars registered by
// RegisterBuiltins, adapted from the reference editor's grammar table
// (JSON, C++ and TOML) into this package's compiler schema. They exist
// to exercise grammar.Compile end to end with realistic, multi-state
// grammars rather than only the minimal fixtures used in tests.
var builtinGrammars = []string{jsonGrammarSrc, cppGrammarSrc, tomlGrammarSrc}

// RegisterBuiltins compiles and registers the built-in grammar set.
// Each grammar is compiled with r.Resolver(), so a built-in that embeds
// another by name resolves it against the grammars already in r.
func RegisterBuiltins(r *Registry) error {
	for _, src := range builtinGrammars {
		rule, err := grammar.Compile([]byte(src), r.Resolver())
		if err != nil {
			return fmt.Errorf("engine: compiling built-in grammar: %w", err)
		}
		r.Register(rule)
	}
	return nil
}

// jsonGrammarSrc highlights JSON: strings, numbers, booleans/null and
// punctuation, with a sub-grammar over string bodies to color escape
// sequences distinctly from the surrounding string style.
const jsonGrammarSrc = `{
  "name": "JSON",
  "fileExtensions": [".json"],
  "styles": [
    { "name": "punctuation", "foreground": "#d4d4d4" },
    { "name": "key", "foreground": "#9cdcfe" },
    { "name": "string", "foreground": "#ce9178" },
    { "name": "number", "foreground": "#b5cea8" },
    { "name": "literal", "foreground": "#569cd6" },
    { "name": "escape", "foreground": "#d7ba7d" }
  ],
  "states": {
    "default": [
      {
        "pattern": "\"(?:[^\"\\\\]|\\\\.)*\"(?=\\s*:)",
        "style": "key"
      },
      {
        "pattern": "\"(?:[^\"\\\\]|\\\\.)*\"",
        "style": "string",
        "subState": {
          "rules": [
            { "pattern": "\\\\.", "style": "escape" }
          ]
        }
      },
      { "pattern": "-?\\d+(?:\\.\\d+)?(?:[eE][+-]?\\d+)?", "style": "number" },
      { "pattern": "\\btrue\\b|\\bfalse\\b|\\bnull\\b", "style": "literal" },
      { "pattern": "[{}\\[\\],:]", "style": "punctuation" }
    ]
  }
}`

// cppGrammarSrc is a reduced C++ grammar: line/block comments, string
// and char literals, numbers, keywords and preprocessor directives,
// adapted from the reference editor's CPP_GRAMMAR constant.
const cppGrammarSrc = `{
  "name": "C++",
  "fileExtensions": [".cpp", ".cc", ".h", ".hpp"],
  "variables": {
    "ident": "[A-Za-z_][A-Za-z0-9_]*"
  },
  "styles": [
    { "name": "comment", "foreground": "#6a9955" },
    { "name": "string", "foreground": "#ce9178" },
    { "name": "number", "foreground": "#b5cea8" },
    { "name": "keyword", "foreground": "#569cd6" },
    { "name": "preprocessor", "foreground": "#c586c0" },
    { "name": "punctuation", "foreground": "#d4d4d4" }
  ],
  "states": {
    "default": [
      { "pattern": "//.*", "style": "comment" },
      { "pattern": "/\\*", "style": "comment", "state": "block_comment" },
      { "pattern": "#\\s*\\w+", "style": "preprocessor" },
      { "pattern": "\"(?:[^\"\\\\]|\\\\.)*\"", "style": "string" },
      { "pattern": "'(?:[^'\\\\]|\\\\.)*'", "style": "string" },
      { "pattern": "\\b\\d+(?:\\.\\d+)?[fFuUlL]*\\b", "style": "number" },
      {
        "pattern": "\\b(?:class|struct|public|private|protected|virtual|override|const|static|void|int|bool|char|float|double|auto|return|if|else|for|while|switch|case|break|continue|namespace|template|typename|new|delete)\\b",
        "style": "keyword"
      },
      { "pattern": "${ident}", "style": "punctuation" },
      { "pattern": "[{}()\\[\\];,.:<>]", "style": "punctuation" }
    ],
    "block_comment": [
      { "pattern": "\\*/", "style": "comment", "state": "default" },
      { "onLineEndState": "block_comment" }
    ]
  }
}`

// tomlGrammarSrc highlights TOML: section headers, keys, strings,
// numbers and booleans, adapted from the reference editor's
// TOML_GRAMMAR constant (used by this module's own config files, see
// [AMBIENT] Configuration in SPEC_FULL.md).
const tomlGrammarSrc = `{
  "name": "TOML",
  "fileExtensions": [".toml"],
  "styles": [
    { "name": "comment", "foreground": "#6a9955" },
    { "name": "section", "foreground": "#4ec9b0" },
    { "name": "key", "foreground": "#9cdcfe" },
    { "name": "string", "foreground": "#ce9178" },
    { "name": "number", "foreground": "#b5cea8" },
    { "name": "literal", "foreground": "#569cd6" },
    { "name": "punctuation", "foreground": "#d4d4d4" }
  ],
  "states": {
    "default": [
      { "pattern": "#.*", "style": "comment" },
      { "pattern": "^\\s*\\[[^\\]]*\\]", "style": "section" },
      { "pattern": "^\\s*[A-Za-z0-9_.-]+(?=\\s*=)", "style": "key" },
      { "pattern": "\"(?:[^\"\\\\]|\\\\.)*\"", "style": "string" },
      { "pattern": "'[^']*'", "style": "string" },
      { "pattern": "-?\\d+(?:\\.\\d+)?", "style": "number" },
      { "pattern": "\\btrue\\b|\\bfalse\\b", "style": "literal" },
      { "pattern": "[=,\\[\\]{}]", "style": "punctuation" }
    ]
  }
}`
