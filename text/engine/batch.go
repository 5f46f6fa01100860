// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/lexer"
)

// BatchItem names one document to analyze in a batch (see §5: multiple
// documents may be analyzed in parallel as long as each has disjoint
// mutable state; grammars are read-only and safely shared).
type BatchItem struct {
	// Ext selects the grammar (or chroma lexer) to apply.
	Ext string
	// Text is the document's full text.
	Text string
}

// BatchResult is one item's outcome from AnalyzeAll, keeping results
// ordered the same as the input regardless of completion order.
type BatchResult struct {
	Highlight highlighting.DocumentHighlight
	Err       error
}

// AnalyzeAll runs AnalyzeWithFallback over items concurrently using an
// errgroup, one goroutine per item, bounded by ctx cancellation. It
// exercises the concurrency guarantee of §5 directly: each item's
// analysis touches only its own BatchResult slot and the registry's
// read path (Lookup, protected by a RWMutex), never another item's
// state.
func (r *Registry) AnalyzeAll(ctx context.Context, items []BatchItem, cfg lexer.Config) []BatchResult {
	results := make([]BatchResult, len(items))
	g, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Err: err}
				return nil
			}
			doc, err := r.AnalyzeWithFallback(item.Ext, item.Text, cfg)
			results[i] = BatchResult{Highlight: doc, Err: err}
			return nil
		})
	}
	// Errors are captured per-item in results rather than aborting the
	// group: one document's missing grammar shouldn't cancel its
	// siblings' analysis.
	_ = g.Wait()
	return results
}
