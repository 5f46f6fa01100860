// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lexer

import (
	"cogentcore.org/highlight/text/grammar"
	"cogentcore.org/highlight/text/highlighting"
	"cogentcore.org/highlight/text/textpos"
)

// Config recognizes the highlighting engine's configuration flags.
type Config struct {
	// InlineStyle, if true, stamps every emitted span with its
	// resolved inline style string.
	InlineStyle bool
}

// LineResult is the outcome of tokenizing one line: its spans, the
// lexer state at end of line, and the line's character count.
type LineResult struct {
	Spans     []highlighting.TokenSpan
	EndState  int32
	CharCount int
}

// stateSource abstracts where the "next state's rules" come from: a
// full grammar's state map at the top level, or a single fixed
// StateRule during sub-grammar descent, where the state never changes
// regardless of what a rule's goto_state says.
type stateSource interface {
	lookup(state int32) (*grammar.StateRule, bool)
}

type stateMapSource struct {
	rule *grammar.SyntaxRule
}

func (s stateMapSource) lookup(state int32) (*grammar.StateRule, bool) {
	return s.rule.State(state)
}

type fixedSource struct {
	rule *grammar.StateRule
}

func (s fixedSource) lookup(int32) (*grammar.StateRule, bool) {
	return s.rule, true
}

// TokenizeLine runs the line tokenizer against a full grammar, per
// §4.2. text must not contain the line-ending characters; the caller
// (the document/incremental analyzer) strips those first.
func TokenizeLine(rule *grammar.SyntaxRule, text []rune, line int32, startState int32, startCharOffset int32, cfg Config) LineResult {
	spans, endState := tokenizeAgainst(text, startState, startCharOffset, line, stateMapSource{rule}, rule, cfg)
	if r, ok := rule.State(endState); ok && r.LineEndState != grammar.NoLineEndState {
		endState = r.LineEndState
	}
	return LineResult{Spans: spans, EndState: endState, CharCount: len(text)}
}

// tokenizeAgainst implements the shared algorithm of §4.2, polymorphic
// over whether the next state's rules come from a full state map or a
// single fixed StateRule (sub-grammar descent).
func tokenizeAgainst(text []rune, startState int32, startCharOffset int32, line int32, src stateSource, inlineRule *grammar.SyntaxRule, cfg Config) ([]highlighting.TokenSpan, int32) {
	var spans []highlighting.TokenSpan
	c := 0
	s := startState
	n := CharCount(text)
	textBytes := bytesOf(text)

	for c < n {
		rule, ok := src.lookup(s)
		if !ok {
			// UnknownState: recovered locally, never fatal.
			c++
			continue
		}
		startByte := CharToByte(text, c)
		region, found := rule.Regex.Search(textBytes, startByte, len(textBytes))
		if !found {
			c++
			continue
		}
		whole := region.Group(0)
		if !whole.Matched || whole.End <= whole.Start {
			// ZeroWidthMatch (or no-match-but-reported): advance one
			// character to guarantee progress.
			c++
			continue
		}

		tr, idx := resolveTokenRule(rule, region)
		if idx < 0 {
			// Grammar compiler guarantees disjoint rule-group ranges,
			// so this should not happen; recover the same way an
			// unmatched state would.
			c++
			continue
		}

		matchCharStart := ByteToChar(text, whole.Start)
		matchCharEnd := ByteToChar(text, whole.End)
		matchCharLen := matchCharEnd - matchCharStart

		var subSpans []highlighting.TokenSpan
		if tr.SubStateRule != nil {
			subText := SubstrChars(text, matchCharStart, matchCharLen)
			raw, _ := tokenizeAgainst(subText, 0, 0, line, fixedSource{tr.SubStateRule}, inlineRule, cfg)
			subSpans = fillSubGrammarGaps(raw, len(subText), tr.GroupStyles[0], s)
		}

		var captureGroups []capturedGroup
		if len(subSpans) == 0 {
			captureGroups = collectCaptureGroups(text, tr, region)
		}

		spans = emitMatchSpans(spans, emitParams{
			line:            line,
			startCharOffset: startCharOffset,
			matchCharStart:  matchCharStart,
			matchCharLen:    matchCharLen,
			text:            text,
			tr:              tr,
			state:           s,
			subSpans:        subSpans,
			captureGroups:   captureGroups,
			inlineRule:      inlineRule,
			cfg:             cfg,
		})

		c = matchCharStart + matchCharLen
		if tr.GotoState != grammar.NoGoto {
			s = tr.GotoState
		}
	}
	return spans, s
}

// resolveTokenRule finds which TokenRule produced the match: the
// first whose own group-0 byte span equals the overall match's byte
// span, per the first-match-by-byte-equality rule of §4.2.d.
func resolveTokenRule(rule *grammar.StateRule, region grammar.MatchRegion) (grammar.TokenRule, int) {
	whole := region.Group(0)
	for i, tr := range rule.TokenRules {
		g := region.Group(tr.GroupOffsetStart)
		if g.Matched && g.Start == whole.Start && g.End == whole.End {
			return tr, i
		}
	}
	return grammar.TokenRule{}, -1
}

type capturedGroup struct {
	group      int
	style      int32
	charStart  int
	charLength int
}

// collectCaptureGroups gathers groups 1..rule.GroupCount that matched
// and lie fully within the whole match, per §4.2.e.
func collectCaptureGroups(text []rune, tr grammar.TokenRule, region grammar.MatchRegion) []capturedGroup {
	whole := region.Group(0)
	var out []capturedGroup
	for g := 1; g <= tr.GroupCount; g++ {
		abs := tr.GroupOffsetStart + g
		gs := region.Group(abs)
		if !gs.Matched || gs.Start < whole.Start || gs.End > whole.End {
			continue
		}
		cs := ByteToChar(text, gs.Start)
		ce := ByteToChar(text, gs.End)
		out = append(out, capturedGroup{group: g, style: tr.GroupStyles[g], charStart: cs, charLength: ce - cs})
	}
	return out
}

type emitParams struct {
	line            int32
	startCharOffset int32
	matchCharStart  int
	matchCharLen    int
	text            []rune
	tr              grammar.TokenRule
	state           int32
	subSpans        []highlighting.TokenSpan
	captureGroups   []capturedGroup
	inlineRule      *grammar.SyntaxRule
	cfg             Config
}

// emitMatchSpans implements the emission policy of §4.5: sub-spans
// take priority over capture groups, which take priority over a
// single whole-match span; each appended span passes through the
// merge invariant.
func emitMatchSpans(spans []highlighting.TokenSpan, p emitParams) []highlighting.TokenSpan {
	switch {
	case len(p.subSpans) > 0:
		for _, ss := range p.subSpans {
			shifted := ss
			shifted.Range.Start.Column += int32(p.matchCharStart)
			shifted.Range.End.Column += int32(p.matchCharStart)
			shifted.Range.Start.Line = p.line
			shifted.Range.End.Line = p.line
			shifted.Range.Start.Index = p.startCharOffset + shifted.Range.Start.Column
			shifted.Range.End.Index = p.startCharOffset + shifted.Range.End.Column
			shifted.State = p.state
			spans = mergeAppend(spans, shifted)
		}
	case len(p.captureGroups) > 0:
		for _, cg := range p.captureGroups {
			span := highlighting.TokenSpan{
				Range: textpos.Range{
					Start: textpos.Position{Line: p.line, Column: int32(cg.charStart), Index: p.startCharOffset + int32(cg.charStart)},
					End:   textpos.Position{Line: p.line, Column: int32(cg.charStart + cg.charLength), Index: p.startCharOffset + int32(cg.charStart+cg.charLength)},
				},
				StyleID:   cg.style,
				State:     p.state,
				GotoState: p.tr.GotoState,
			}
			if p.cfg.InlineStyle {
				if s, ok := p.inlineRule.InlineStyle(cg.style); ok {
					span.InlineStyle = s
					span.HasInlineStyle = true
				}
			}
			spans = mergeAppend(spans, span)
		}
	default:
		start := p.matchCharStart
		end := p.matchCharStart + p.matchCharLen
		span := highlighting.TokenSpan{
			Range: textpos.Range{
				Start: textpos.Position{Line: p.line, Column: int32(start), Index: p.startCharOffset + int32(start)},
				End:   textpos.Position{Line: p.line, Column: int32(end), Index: p.startCharOffset + int32(end)},
			},
			StyleID:        p.tr.GroupStyles[0],
			State:          p.state,
			GotoState:      p.tr.GotoState,
			MatchedText:    string(SubstrChars(p.text, start, end-start)),
			HasMatchedText: true,
		}
		if p.cfg.InlineStyle {
			if s, ok := p.inlineRule.InlineStyle(p.tr.GroupStyles[0]); ok {
				span.InlineStyle = s
				span.HasInlineStyle = true
			}
		}
		spans = mergeAppend(spans, span)
	}
	return spans
}

// fillSubGrammarGaps implements §4.3's gap-filling: the sub-tokenizer
// guarantees the parent match is fully tiled by inserting a filler
// span, in the parent rule's default style, before the first
// sub-match, between sub-matches, and after the last one.
func fillSubGrammarGaps(subSpans []highlighting.TokenSpan, subLen int, defaultStyle int32, state int32) []highlighting.TokenSpan {
	filled := make([]highlighting.TokenSpan, 0, len(subSpans)*2+1)
	pos := int32(0)
	gap := func(from, to int32) {
		if to <= from {
			return
		}
		filled = append(filled, highlighting.TokenSpan{
			Range: textpos.Range{
				Start: textpos.Position{Column: from},
				End:   textpos.Position{Column: to},
			},
			StyleID:   defaultStyle,
			State:     state,
			GotoState: grammar.NoGoto,
		})
	}
	for _, ss := range subSpans {
		gap(pos, ss.Range.Start.Column)
		filled = append(filled, ss)
		pos = ss.Range.End.Column
		if ss.Range.End.Column == ss.Range.Start.Column {
			pos++
		}
	}
	gap(pos, int32(subLen))
	return filled
}

// mergeAppend implements the merge invariant of §4.5: adjacent
// same-style spans on the same line are coalesced rather than
// appended, preserving the first span's state/goto_state and without
// redefining matched_text.
func mergeAppend(spans []highlighting.TokenSpan, span highlighting.TokenSpan) []highlighting.TokenSpan {
	if len(spans) > 0 {
		prev := &spans[len(spans)-1]
		if prev.Range.End.Column == span.Range.Start.Column && prev.StyleID == span.StyleID {
			prev.Range.End = span.Range.End
			return spans
		}
	}
	return append(spans, span)
}
