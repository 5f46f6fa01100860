// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine is the highlighting façade: a registry of compiled
// grammars keyed by name and file extension, a per-document cache of
// incremental analyzers built lazily on first load, and a full-analysis
// path that falls back to chroma when no grammar claims a document's
// extension.
//
// Grounded on the teacher's text/highlighting.Highlighter, which tries
// a custom grammar first and falls back to chroma second.
package engine

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/highlight/text/analyze"
	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/lines"
)

// ErrGrammarMissing is returned when no compiled grammar claims a
// document's extension or name (on AnalyzeWithFallback's chroma path,
// when no chroma lexer claims it either). Per §7, the
// engine returns this rather than panicking; the caller decides.
var ErrGrammarMissing = errors.New("engine: no grammar for document")

// Registry holds compiled grammars, keyed by name and by normalized
// (leading-dot, lowercase) file extension, plus the per-document
// analyzer cache.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*grammar.SyntaxRule
	byExt    map[string]*grammar.SyntaxRule
	docs     map[string]*analyze.Incremental
	fallback bool // whether to try chroma when no grammar matches
}

// NewRegistry returns an empty Registry. Use chromaFallback to control
// whether AnalyzeWithFallback falls back to chroma for unclaimed
// extensions; Lookup and LoadDocument never use chroma.
func NewRegistry(chromaFallback bool) *Registry {
	return &Registry{
		byName:   make(map[string]*grammar.SyntaxRule),
		byExt:    make(map[string]*grammar.SyntaxRule),
		docs:     make(map[string]*analyze.Incremental),
		fallback: chromaFallback,
	}
}

// Register adds a compiled grammar to the registry, indexing it by
// name and by each of its (normalized) file extensions, and evicting
// any cached document analyzers built from a grammar with the same
// name (used by Watch's hot-reload path).
func (r *Registry) Register(rule *grammar.SyntaxRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[rule.Name] = rule
	for _, ext := range rule.FileExtensions {
		r.byExt[strings.ToLower(ext)] = rule
	}
	for uri, inc := range r.docs {
		if inc.Rule.Name == rule.Name {
			delete(r.docs, uri)
		}
	}
}

// ApplyStyle overwrites rule's InlineStyleLookup with the CSS-like
// declarations from a loaded theme (see highlighting.StyleRegistry),
// so the same grammar can be rendered under different color themes
// without recompiling it. Call before Register, or after (Register
// keys by Name/FileExtensions only, so reapplying a style to an
// already-registered rule is also safe).
func ApplyStyle(rule *grammar.SyntaxRule, style highlighting.Style) {
	rule.InlineStyleLookup = style.InlineLookup()
}

// Lookup resolves a grammar by exact name or by file extension
// (normalized to a leading "."; case-insensitive).
func (r *Registry) Lookup(nameOrExt string) (*grammar.SyntaxRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.byName[nameOrExt]; ok {
		return g, true
	}
	ext := strings.ToLower(nameOrExt)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	g, ok := r.byExt[ext]
	return g, ok
}

// Resolver returns a grammar.Resolver bound to this registry's
// byName map, for compiling grammars that reference one another by
// name.
func (r *Registry) Resolver() grammar.Resolver {
	return func(name string) (*grammar.SyntaxRule, error) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		g, ok := r.byName[name]
		if !ok {
			return nil, ErrGrammarMissing
		}
		return g, nil
	}
}

// LoadDocument returns the cached incremental analyzer for uri,
// constructing one on first load by resolving ext against the
// registry. If no compiled grammar claims ext it returns
// ErrGrammarMissing; chroma is not consulted here. cfg configures the
// analyzer.
func (r *Registry) LoadDocument(uri, ext string, buf *lines.Buffer, cfg analyze.Config) (*analyze.Incremental, error) {
	r.mu.Lock()
	if inc, ok := r.docs[uri]; ok {
		r.mu.Unlock()
		return inc, nil
	}
	r.mu.Unlock()

	rule, ok := r.Lookup(ext)
	if !ok {
		slog.Warn("engine: no compiled grammar for extension", "ext", ext)
		return nil, ErrGrammarMissing
	}

	inc := analyze.NewIncremental(rule, buf, cfg)
	r.mu.Lock()
	r.docs[uri] = inc
	r.mu.Unlock()
	return inc, nil
}

// CloseDocument evicts uri's cached analyzer.
func (r *Registry) CloseDocument(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, uri)
}

// LoadDocumentForPath is LoadDocument with the extension derived from
// path, for callers that key documents by filesystem path rather than
// by an opaque URI plus a separately-tracked extension.
func (r *Registry) LoadDocumentForPath(path string, buf *lines.Buffer, cfg analyze.Config) (*analyze.Incremental, error) {
	return r.LoadDocument(path, extOf(path), buf, cfg)
}

// extOf is a small filepath.Ext wrapper kept here so callers building
// a URI->extension mapping don't need their own import of path/filepath.
func extOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
