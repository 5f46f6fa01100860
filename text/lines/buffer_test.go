// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/highlight/text/textpos"
)

func TestNewBufferTrailingNewline(t *testing.T) {
	b := NewBuffer("a\n")
	assert.Equal(t, 2, b.NumLines())
	l0, e0 := b.Line(0)
	assert.Equal(t, "a", string(l0))
	assert.Equal(t, EndingLF, e0)
	l1, e1 := b.Line(1)
	assert.Equal(t, "", string(l1))
	assert.Equal(t, EndingNone, e1)
}

func TestNewBufferEmpty(t *testing.T) {
	b := NewBuffer("")
	assert.Equal(t, 1, b.NumLines())
}

func TestBufferPatchInsertsLine(t *testing.T) {
	b := NewBuffer("abc\ndef\n")
	lc := b.Patch(textpos.NewRange(0, 1, 0, 1), []rune("X\nY"))
	assert.Equal(t, int32(1), int32(lc))
	assert.Equal(t, 4, b.NumLines())
	l0, _ := b.Line(0)
	assert.Equal(t, "aX", string(l0))
	l1, _ := b.Line(1)
	assert.Equal(t, "Ybc", string(l1))
}

func TestBufferPatchDeletesLines(t *testing.T) {
	b := NewBuffer("abc\ndef\nghi\n")
	lc := b.Patch(textpos.NewRange(0, 1, 2, 1), nil)
	assert.Equal(t, -2, lc)
	assert.Equal(t, 2, b.NumLines())
	l0, _ := b.Line(0)
	assert.Equal(t, "ahi", string(l0))
}

func TestNewBufferBareCR(t *testing.T) {
	b := NewBuffer("a\rb\r\nc\r")
	assert.Equal(t, 4, b.NumLines())
	l0, e0 := b.Line(0)
	assert.Equal(t, "a", string(l0))
	assert.Equal(t, EndingCR, e0)
	l1, e1 := b.Line(1)
	assert.Equal(t, "b", string(l1))
	assert.Equal(t, EndingCRLF, e1)
	l2, e2 := b.Line(2)
	assert.Equal(t, "c", string(l2))
	assert.Equal(t, EndingCR, e2)
	l3, e3 := b.Line(3)
	assert.Equal(t, "", string(l3))
	assert.Equal(t, EndingNone, e3)
}

func TestLineEndingWidth(t *testing.T) {
	assert.Equal(t, 0, EndingNone.Width())
	assert.Equal(t, 1, EndingLF.Width())
	assert.Equal(t, 1, EndingCR.Width())
	assert.Equal(t, 2, EndingCRLF.Width())
}
