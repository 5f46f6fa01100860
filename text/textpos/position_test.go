// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionIsLess(t *testing.T) {
	a := Position{Line: 1, Column: 2}
	b := Position{Line: 1, Column: 3}
	c := Position{Line: 2, Column: 0}
	assert.True(t, a.IsLess(b))
	assert.False(t, b.IsLess(a))
	assert.True(t, b.IsLess(c))
	assert.False(t, a.IsLess(a))
}

func TestEditLineDelta(t *testing.T) {
	e := NewEdit(NewRange(1, 0, 1, 2), []rune("hi\nthere\n"))
	assert.Equal(t, int32(2), e.LineDelta())

	e2 := NewEdit(NewRange(1, 0, 3, 0), []rune(""))
	assert.Equal(t, int32(-2), e2.LineDelta())
}
