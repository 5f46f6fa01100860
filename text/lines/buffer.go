// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lines implements the line-based document buffer the
// analyzer consumes: line storage, line-ending tracking, and patch
// application. It is a drastically trimmed descendant of the
// teacher's Lines type, stripped of everything that isn't part of the
// highlighting core's document-buffer contract (views, undo, search,
// word movement, hyperlinks).
package lines

import (
	"sync"
)

// Ending is a line's terminating sequence.
type Ending int32

const (
	// EndingNone is the unterminated final line of a document.
	EndingNone Ending = iota
	// EndingLF is a bare "\n".
	EndingLF
	// EndingCR is a bare "\r".
	EndingCR
	// EndingCRLF is "\r\n".
	EndingCRLF
)

// Width returns the line-ending's character width: 0 for EndingNone,
// 1 for EndingLF/EndingCR, 2 for EndingCRLF, per §6.
func (e Ending) Width() int {
	switch e {
	case EndingNone:
		return 0
	case EndingCRLF:
		return 2
	default:
		return 1
	}
}

// Buffer is a mutex-guarded, line-based text buffer: the minimal
// document the incremental analyzer needs. Public methods follow the
// teacher's Lock/unexported-impl/Unlock convention throughout
// text/lines/api.go.
type Buffer struct {
	mu       sync.Mutex
	lines    [][]rune
	endings  []Ending
}

// NewBuffer returns a Buffer holding text, split into lines the same
// way the teacher's SetText does: splitting on "\n", "\r\n" and bare
// "\r" (see splitLines) and classifying each line's ending, with the
// trailing empty line after a final terminator
// always present as its own (unterminated) line, per §4.4.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.setText(text)
	return b
}

func (b *Buffer) setText(text string) {
	b.lines, b.endings = splitLines([]rune(text))
}

// splitLines scans text a rune at a time and splits it into lines,
// classifying each line's terminator as LF, CR, or CRLF, per §6's
// Ending contract. Scanning one rune at a time (rather than
// strings.Split on "\n") is what lets a bare "\r" be recognized as its
// own line ending instead of staying embedded in the following line's
// text. The final piece, after the last terminator (or the whole text,
// if it has none), is always its own EndingNone line, matching the
// always-tokenize-the-trailing-empty-line rule of §4.4.
func splitLines(text []rune) ([][]rune, []Ending) {
	var lines [][]rune
	var endings []Ending
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, append([]rune{}, text[start:i]...))
			endings = append(endings, EndingLF)
			start = i + 1
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				lines = append(lines, append([]rune{}, text[start:i]...))
				endings = append(endings, EndingCRLF)
				i++
				start = i + 1
			} else {
				lines = append(lines, append([]rune{}, text[start:i]...))
				endings = append(endings, EndingCR)
				start = i + 1
			}
		}
	}
	lines = append(lines, append([]rune{}, text[start:]...))
	endings = append(endings, EndingNone)
	return lines, endings
}

// NumLines returns the number of lines currently in the buffer.
func (b *Buffer) NumLines() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Line returns the text and ending of line i.
func (b *Buffer) Line(i int) (text []rune, ending Ending) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lines[i], b.endings[i]
}

// LineCharCount returns the character count of line i, not including
// its line ending.
func (b *Buffer) LineCharCount(i int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines[i])
}

// CharIndexOfLine returns the document-wide character offset of the
// start of line i.
func (b *Buffer) CharIndexOfLine(i int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.charIndexOfLine(i)
}

func (b *Buffer) charIndexOfLine(i int) int {
	idx := 0
	for l := 0; l < i && l < len(b.lines); l++ {
		idx += len(b.lines[l]) + b.endings[l].Width()
	}
	return idx
}

// TotalChars returns the total character count of the document,
// including line-ending characters.
func (b *Buffer) TotalChars() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.charIndexOfLine(len(b.lines))
}
