// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"log/slog"

	"github.com/pelletier/go-toml/v2"

	"cogentcore.org/highlight/text/analyze"
	"cogentcore.org/highlight/text/lexer"
)

// FileConfig is the on-disk form of an engine's configuration,
// loadable from TOML, the teacher's own structured-config format.
type FileConfig struct {
	// InlineStyle corresponds to analyze.Config's InlineStyle flag.
	InlineStyle bool `toml:"inline_style"`
	// ShowIndex corresponds to analyze.Config's ShowIndex flag.
	ShowIndex bool `toml:"show_index"`
	// ChromaFallback enables the chroma fallback path for extensions
	// with no compiled grammar.
	ChromaFallback bool `toml:"chroma_fallback"`
	// GrammarDirs lists grammar directories. Nothing in this package
	// reads it: LoadGrammarDir compiles the file paths it is given and
	// Watch watches the one directory it is given.
	GrammarDirs []string `toml:"grammar_dirs"`
	// DefaultStyle names the style theme (see StyleRegistry) applied
	// when resolving inline styles.
	DefaultStyle string `toml:"default_style"`
}

// ToAnalyzeConfig converts the loaded flags to an analyze.Config.
func (c FileConfig) ToAnalyzeConfig() analyze.Config {
	return analyze.Config{
		Config:    lexer.Config{InlineStyle: c.InlineStyle},
		ShowIndex: c.ShowIndex,
	}
}

// LoadConfig parses TOML configuration data (the contents of a
// configuration file; it does not read the file itself).
func LoadConfig(data []byte) (FileConfig, error) {
	var c FileConfig
	if err := toml.Unmarshal(data, &c); err != nil {
		slog.Error("engine: parsing configuration", "err", err)
		return FileConfig{}, err
	}
	return c, nil
}
