// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grammar

import (
	"fmt"
	"sort"
	"strings"
)

func sortStrings(s []string) { sort.Strings(s) }

// compileRuleList compiles an ordered list of rule definitions into a
// single combined StateRule, per §3/§4.2: a combined regex whose
// top-level alternation corresponds one-to-one with the token rules.
func compileRuleList(rules []jsonRule, vars map[string]string, styleIDs, stateIDs map[string]int32) (*StateRule, error) {
	sr := &StateRule{LineEndState: NoLineEndState}
	var patterns []string
	offset := 1
	for _, jr := range rules {
		if jr.Pattern == "" {
			// A rule with no pattern carries only onLineEndState,
			// applying at the state level rather than per-rule.
			if jr.OnLineEndState != "" {
				id, ok := stateIDs[jr.OnLineEndState]
				if !ok {
					return nil, fmt.Errorf("unknown onLineEndState %q", jr.OnLineEndState)
				}
				sr.LineEndState = id
			}
			continue
		}
		pattern := expandVariables(jr.Pattern, vars)
		groupCount := countCapturingGroups(pattern)

		styles, err := resolveGroupStyles(jr, groupCount, styleIDs)
		if err != nil {
			return nil, err
		}
		gotoState := NoGoto
		if jr.State != "" {
			id, ok := stateIDs[jr.State]
			if !ok {
				return nil, fmt.Errorf("unknown goto state %q", jr.State)
			}
			gotoState = id
		}
		var sub *StateRule
		if jr.SubState != nil {
			s, err := compileRuleList(jr.SubState.Rules, vars, styleIDs, stateIDs)
			if err != nil {
				return nil, fmt.Errorf("subState: %w", err)
			}
			sub = s
		}

		tr := TokenRule{
			GroupOffsetStart: offset,
			GroupCount:       groupCount,
			GroupStyles:      styles,
			GotoState:        int32(gotoState),
			SubStateRule:     sub,
		}
		offset += 1 + groupCount
		sr.TokenRules = append(sr.TokenRules, tr)
		sr.rawPatterns = append(sr.rawPatterns, pattern)
		patterns = append(patterns, "("+pattern+")")
	}
	if len(patterns) == 0 {
		// A state with no matchable rules still needs a regex that
		// never matches, so the tokenizer's search() call is well
		// defined; it will fall through to the single-character
		// advance path every time.
		re, err := NewRegexp2Adapter(`(?!)`)
		if err != nil {
			return nil, err
		}
		sr.Regex = re
		return sr, nil
	}
	re, err := NewRegexp2Adapter(strings.Join(patterns, "|"))
	if err != nil {
		return nil, err
	}
	sr.Regex = re
	return sr, nil
}

func resolveGroupStyles(jr jsonRule, groupCount int, styleIDs map[string]int32) ([]int32, error) {
	styles := make([]int32, groupCount+1)
	if jr.Style != "" {
		id, ok := styleIDs[jr.Style]
		if !ok {
			return nil, fmt.Errorf("unknown style %q", jr.Style)
		}
		for i := range styles {
			styles[i] = id
		}
		return styles, nil
	}
	if len(jr.Styles) > 0 {
		// "styles" is a flat [groupIdx, styleName, groupIdx, styleName, ...]
		// list; group 0's default falls back to the first entry's style
		// if not explicitly given.
		var first int32
		group0Set := false
		for i := 0; i+1 < len(jr.Styles); i += 2 {
			gi, ok := toInt(jr.Styles[i])
			if !ok {
				return nil, fmt.Errorf("malformed styles entry at %d", i)
			}
			name, ok := jr.Styles[i+1].(string)
			if !ok {
				return nil, fmt.Errorf("malformed styles entry at %d", i+1)
			}
			id, ok := styleIDs[name]
			if !ok {
				return nil, fmt.Errorf("unknown style %q", name)
			}
			if gi < 0 || gi >= len(styles) {
				return nil, fmt.Errorf("styles group index %d out of range", gi)
			}
			styles[gi] = id
			if i == 0 {
				first = id
			}
			if gi == 0 {
				group0Set = true
			}
		}
		if !group0Set && len(jr.Styles) >= 2 {
			styles[0] = first
		}
		return styles, nil
	}
	return styles, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// expandVariables substitutes ${name} references, recursively, up to
// a bounded number of passes to tolerate variables defined in terms of
// other variables.
func expandVariables(pattern string, vars map[string]string) string {
	if len(vars) == 0 {
		return pattern
	}
	for pass := 0; pass < 8; pass++ {
		changed := false
		for name, val := range vars {
			needle := "${" + name + "}"
			if strings.Contains(pattern, needle) {
				pattern = strings.ReplaceAll(pattern, needle, val)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return pattern
}

// countCapturingGroups counts the capturing groups in an (already
// variable-expanded) regex pattern: every "(" not immediately followed
// by "?" opens one. Every "(?" form is counted as non-capturing, which
// includes named groups ("(?<name>" / "(?P<name>") and inline flags as
// well as "?:", "?=", "?!", "?<=", "?<!". Parens inside a bracket
// expression ("[()]") are literal characters, not groups, and are
// skipped accordingly.
func countCapturingGroups(pattern string) int {
	count := 0
	r := []rune(pattern)
	inClass := false
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case '\\':
			i++
		case '[':
			if !inClass {
				inClass = true
				// A "]" right after "[" (or after "[^") is a literal
				// "]", not the class's closing bracket.
				j := i + 1
				if j < len(r) && r[j] == '^' {
					j++
				}
				if j < len(r) && r[j] == ']' {
					i = j
				}
			}
		case ']':
			inClass = false
		case '(':
			if inClass {
				continue
			}
			if i+1 < len(r) && r[i+1] == '?' {
				if i+2 < len(r) && (r[i+2] == ':' || r[i+2] == '=' || r[i+2] == '!') {
					continue
				}
				if i+3 < len(r) && r[i+2] == '<' && (r[i+3] == '=' || r[i+3] == '!') {
					continue
				}
				continue // other "(?" forms (named groups, inline flags) are non-capturing for our purposes
			}
			count++
		}
	}
	return count
}
