// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textpos

// Range is a contiguous region within a document, defined by start and
// end [Position]s. End is exclusive, as in a normal half-open span.
type Range struct {
	// Start is the starting position of the range.
	Start Position
	// End is the ending position of the range.
	End Position
}

// NewRange returns a new Range from the given line, column pairs.
func NewRange(startLine, startCol, endLine, endCol int32) Range {
	return Range{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

func (tr Range) String() string {
	return tr.Start.String() + "-" + tr.End.String()
}
