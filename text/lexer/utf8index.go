// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lexer implements the line-level tokenizer: matching a
// compiled grammar's regex-based token rules against UTF-8 text at a
// character position, resolving which rule matched, and decomposing
// the match into capture-group spans and recursive sub-grammar spans.
package lexer

// The tokenizer's external contract is in characters; the regex
// engine operates on bytes. These helpers bridge the two, following
// the same rune/byte split the teacher's runes package uses elsewhere
// in the corpus.

// CharCount returns the number of characters (runes) in text.
func CharCount(text []rune) int {
	return len(text)
}

// CharToByte returns the byte offset of character charPos within the
// UTF-8 encoding of text.
func CharToByte(text []rune, charPos int) int {
	b := 0
	for i := 0; i < charPos && i < len(text); i++ {
		b += runeLen(text[i])
	}
	return b
}

// ByteToChar returns the character index whose UTF-8 encoding starts
// at bytePos within text.
func ByteToChar(text []rune, bytePos int) int {
	b := 0
	for i, r := range text {
		if b >= bytePos {
			return i
		}
		b += runeLen(r)
	}
	return len(text)
}

// SubstrChars returns the substring of text spanning [charStart,
// charStart+charLen) as a rune slice.
func SubstrChars(text []rune, charStart, charLen int) []rune {
	end := charStart + charLen
	if charStart < 0 {
		charStart = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if charStart >= end {
		return nil
	}
	return text[charStart:end]
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

// bytesOf encodes text to UTF-8 bytes once per tokenize_line call; the
// tokenizer keeps this alongside the rune slice so it can feed the
// opaque regex adapter byte offsets without re-encoding on every search.
func bytesOf(text []rune) []byte {
	return []byte(string(text))
}
