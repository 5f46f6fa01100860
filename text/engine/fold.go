// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "cogentcore.org/highlight/text/fold"

// FoldMap computes the block/fold map for uri's currently loaded
// document, using its grammar's BlockPairs. It returns false if uri
// has no loaded document (see LoadDocument).
func (r *Registry) FoldMap(uri string) (fold.Map, bool) {
	r.mu.RLock()
	inc, ok := r.docs[uri]
	r.mu.RUnlock()
	if !ok {
		return fold.Map{}, false
	}
	return fold.Build(inc.Rule, inc.Buffer), true
}
