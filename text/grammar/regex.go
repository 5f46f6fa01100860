// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grammar defines the compiled grammar model consumed by the
// line tokenizer: states, token rules, and the regex search adapter
// that bridges them to the underlying regex engine.
package grammar

import (
	"github.com/dlclark/regexp2"
)

// MatchRegion reports the byte span of a regex match and of each of
// its capture groups. Group 0 is the whole match. A group that did
// not participate in the match has Matched == false.
type MatchRegion struct {
	Groups []GroupSpan
}

// GroupSpan is the byte span of one capture group within a match.
type GroupSpan struct {
	Matched bool
	Start   int
	End     int
}

// Group returns the span for group g, or a zero, unmatched GroupSpan
// if g is out of range.
func (m MatchRegion) Group(g int) GroupSpan {
	if g < 0 || g >= len(m.Groups) {
		return GroupSpan{}
	}
	return m.Groups[g]
}

// Regexp is the opaque regex adapter the tokenizer depends on. It
// performs an unanchored forward search starting at startByte, over
// haystack[:endByte], and reports the earliest match at or after
// startByte along with every capture group's byte span.
type Regexp interface {
	Search(haystack []byte, startByte, endByte int) (MatchRegion, bool)
}

// Regexp2Adapter implements Regexp using github.com/dlclark/regexp2,
// chosen over the standard library's RE2-based regexp because real
// grammars need backreferences and lookaround (matching a string's own
// quote character, keyword boundaries) that RE2 cannot express.
type Regexp2Adapter struct {
	re *regexp2.Regexp
}

// NewRegexp2Adapter compiles pattern into a Regexp2Adapter. It uses
// regexp2's default option set rather than the RE2 compatibility mode:
// that mode restricts the engine back down to RE2 syntax, which would
// defeat the very reason this module reaches for regexp2 over the
// standard library (backreferences and lookaround).
func NewRegexp2Adapter(pattern string) (*Regexp2Adapter, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &Regexp2Adapter{re: re}, nil
}

// Search implements Regexp. Matching runs against the rune form of the
// haystack (FindRunesMatchStartingAt), so captures' Index/Length are
// rune offsets; the adapter's own contract is byte offsets, so every
// rune offset is translated to a byte offset before it is returned.
func (a *Regexp2Adapter) Search(haystack []byte, startByte, endByte int) (MatchRegion, bool) {
	if endByte > len(haystack) {
		endByte = len(haystack)
	}
	if startByte < 0 || startByte > endByte {
		return MatchRegion{}, false
	}
	text := string(haystack[:endByte])
	runes := []rune(text)
	byteOf := runeToByteIndex(text, runes)
	startRune := byteToRuneIndex(byteOf, startByte)

	m, err := a.re.FindRunesMatchStartingAt(runes, startRune)
	if err != nil || m == nil {
		return MatchRegion{}, false
	}

	groups := m.Groups()
	region := MatchRegion{Groups: make([]GroupSpan, len(groups))}
	for i, g := range groups {
		if len(g.Captures) == 0 {
			region.Groups[i] = GroupSpan{}
			continue
		}
		c := g.Captures[len(g.Captures)-1]
		gs := c.Index
		ge := c.Index + c.Length
		region.Groups[i] = GroupSpan{
			Matched: true,
			Start:   byteOf[gs],
			End:     byteOf[ge],
		}
	}
	return region, true
}

// runeToByteIndex returns, for each rune index 0..len(runes), the byte
// offset into text at which that rune starts (with one extra trailing
// entry for the end of the string).
func runeToByteIndex(text string, runes []rune) []int {
	idx := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		idx[i] = b
		b += runeLen(r)
	}
	idx[len(runes)] = b
	return idx
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// byteToRuneIndex finds the rune index whose byte offset equals b,
// via binary search over the monotone byteOf table.
func byteToRuneIndex(byteOf []int, b int) int {
	lo, hi := 0, len(byteOf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if byteOf[mid] < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
