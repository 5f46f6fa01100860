// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highlighting

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// StyleEntry is the inline style associated with one style id: a
// foreground/background color and decoration flags. It is the
// realization of SyntaxRule.InlineStyleLookup's value side.
type StyleEntry struct {
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
}

// Style maps a style id to its StyleEntry.
type Style map[int32]StyleEntry

// StyleRegistry is a named collection of Styles (themes), e.g.
// "monokai" vs "github". A StyleRegistry is read-only shared once
// loaded, same as a compiled grammar.
type StyleRegistry map[string]Style

// OpenYAML loads a StyleRegistry from a YAML file, matching the
// teacher's style's OpenJSON/SaveJSON load-or-log pattern but against
// the YAML theme format this repo uses for styles.
func OpenYAML(filename string) (StyleRegistry, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		slog.Error("highlighting: opening style registry", "file", filename, "err", err)
		return nil, err
	}
	var reg StyleRegistry
	if err := yaml.Unmarshal(b, &reg); err != nil {
		slog.Error("highlighting: parsing style registry", "file", filename, "err", err)
		return nil, err
	}
	return reg, nil
}

// SaveYAML saves a StyleRegistry to a YAML file.
func (r StyleRegistry) SaveYAML(filename string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		slog.Error("highlighting: marshaling style registry", "err", err)
		return err
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		slog.Error("highlighting: writing style registry", "file", filename, "err", err)
		return err
	}
	return nil
}

// InlineLookup converts a Style into the int32->string form a
// grammar.SyntaxRule.InlineStyleLookup expects, resolving each entry
// to a CSS-like inline declaration.
func (s Style) InlineLookup() map[int32]string {
	out := make(map[int32]string, len(s))
	for id, e := range s {
		out[id] = e.ToCSS()
	}
	return out
}

// ToCSS renders a StyleEntry as an inline CSS-like declaration string.
func (se StyleEntry) ToCSS() string {
	css := ""
	if se.Foreground != "" {
		css += "color:" + se.Foreground + ";"
	}
	if se.Background != "" {
		css += "background-color:" + se.Background + ";"
	}
	if se.Bold {
		css += "font-weight:bold;"
	}
	if se.Italic {
		css += "font-style:italic;"
	}
	if se.Underline {
		css += "text-decoration:underline;"
	}
	return css
}
