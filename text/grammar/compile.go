// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grammar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a grammar document cannot be compiled,
// per the MalformedGrammarJSON error kind: surfaced by the compiler,
// never by the tokenizer core.
type ErrMalformed struct {
	Err error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("malformed grammar: %v", e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }

// Resolver resolves a named grammar reference (the "reference" field
// on a state definition) during compilation, e.g. to let one grammar
// embed another's default state to highlight an inline code fragment.
type Resolver func(name string) (*SyntaxRule, error)

// jsonStyle is one entry of the "styles" array: a named style with a
// foreground color and optional decoration tags.
type jsonStyle struct {
	Name       string   `json:"name" yaml:"name"`
	Foreground string   `json:"foreground" yaml:"foreground"`
	Background string   `json:"background" yaml:"background"`
	Tags       []string `json:"tags" yaml:"tags"`
}

// jsonRule is one token rule entry within a state's rule list.
type jsonRule struct {
	Pattern        string   `json:"pattern" yaml:"pattern"`
	Style          string   `json:"style" yaml:"style"`
	Styles         []any    `json:"styles" yaml:"styles"`
	State          string   `json:"state" yaml:"state"`
	OnLineEndState string   `json:"onLineEndState" yaml:"onLineEndState"`
	SubState       *jsonSub `json:"subState" yaml:"subState"`
}

// jsonSub is an inline nested grammar attached directly to a token
// rule (TokenRule.SubStateRule), as opposed to a whole-state "reference".
type jsonSub struct {
	Rules []jsonRule `json:"rules" yaml:"rules"`
}

// jsonStateObj is the expanded form of a state: embeds another named
// grammar's default state via Reference, then overlays local Rules
// (matched first), with an optional forced end-of-line transition.
type jsonStateObj struct {
	Reference      string     `json:"reference" yaml:"reference"`
	Rules          []jsonRule `json:"rules" yaml:"rules"`
	OnLineEndState string     `json:"onLineEndState" yaml:"onLineEndState"`
}

type jsonBlockPair struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// jsonGrammar is the on-disk shape of a compiled grammar, as produced
// by real grammar authors (see the built-in grammar set in builtin.go).
type jsonGrammar struct {
	Name           string            `json:"name" yaml:"name"`
	FileExtensions []string          `json:"fileExtensions" yaml:"fileExtensions"`
	Styles         []jsonStyle       `json:"styles" yaml:"styles"`
	Variables      map[string]string `json:"variables" yaml:"variables"`
	BlockPairs     []jsonBlockPair   `json:"blockPairs" yaml:"blockPairs"`
	States         map[string]json.RawMessage `json:"states" yaml:"-"`
	// StatesYAML mirrors States for the YAML path, where yaml.v3
	// decodes heterogeneous map values into Node trees more naturally
	// than json.RawMessage.
	StatesYAML map[string]yaml.Node `json:"-" yaml:"states"`
}

// Compile compiles a grammar from its JSON text. resolve is used to
// look up any named grammar referenced by a state's "reference" field;
// pass nil if the grammar uses no references.
func Compile(text []byte, resolve Resolver) (*SyntaxRule, error) {
	var g jsonGrammar
	if err := json.Unmarshal(text, &g); err != nil {
		return nil, &ErrMalformed{Err: err}
	}
	rawStates := make(map[string]rawState, len(g.States))
	for name, raw := range g.States {
		rs, err := decodeRawStateJSON(raw)
		if err != nil {
			return nil, &ErrMalformed{Err: fmt.Errorf("state %q: %w", name, err)}
		}
		rawStates[name] = rs
	}
	return compileGrammar(&g, rawStates, resolve)
}

// CompileYAML compiles a grammar from its YAML text.
func CompileYAML(text []byte, resolve Resolver) (*SyntaxRule, error) {
	var g jsonGrammar
	if err := yaml.Unmarshal(text, &g); err != nil {
		return nil, &ErrMalformed{Err: err}
	}
	rawStates := make(map[string]rawState, len(g.StatesYAML))
	for name, node := range g.StatesYAML {
		rs, err := decodeRawStateYAML(node)
		if err != nil {
			return nil, &ErrMalformed{Err: fmt.Errorf("state %q: %w", name, err)}
		}
		rawStates[name] = rs
	}
	return compileGrammar(&g, rawStates, resolve)
}

// CompileFile compiles a grammar from a file on disk, dispatching on
// its extension (.yaml/.yml vs everything else, treated as JSON).
func CompileFile(path string, resolve Resolver) (*SyntaxRule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return CompileYAML(b, resolve)
	default:
		return Compile(b, resolve)
	}
}

// rawState is the engine-neutral intermediate form of a state
// definition, after JSON or YAML decoding but before regex compilation.
type rawState struct {
	Reference      string
	Rules          []jsonRule
	OnLineEndState string
}

func decodeRawStateJSON(raw json.RawMessage) (rawState, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var rules []jsonRule
		if err := json.Unmarshal(raw, &rules); err != nil {
			return rawState{}, err
		}
		return rawState{Rules: rules}, nil
	}
	var obj jsonStateObj
	if err := json.Unmarshal(raw, &obj); err != nil {
		return rawState{}, err
	}
	return rawState{Reference: obj.Reference, Rules: obj.Rules, OnLineEndState: obj.OnLineEndState}, nil
}

func decodeRawStateYAML(node yaml.Node) (rawState, error) {
	if node.Kind == yaml.SequenceNode {
		var rules []jsonRule
		if err := node.Decode(&rules); err != nil {
			return rawState{}, err
		}
		return rawState{Rules: rules}, nil
	}
	var obj jsonStateObj
	if err := node.Decode(&obj); err != nil {
		return rawState{}, err
	}
	return rawState{Reference: obj.Reference, Rules: obj.Rules, OnLineEndState: obj.OnLineEndState}, nil
}

// buildStyleIDs assigns a stable integer id to every named style the
// grammar declares, in declaration order.
func buildStyleIDs(styles []jsonStyle) map[string]int32 {
	ids := make(map[string]int32, len(styles))
	for i, s := range styles {
		ids[s.Name] = int32(i)
	}
	return ids
}

func compileGrammar(g *jsonGrammar, rawStates map[string]rawState, resolve Resolver) (*SyntaxRule, error) {
	if g.Name == "" {
		return nil, &ErrMalformed{Err: fmt.Errorf("grammar has no name")}
	}
	styleIDs := buildStyleIDs(g.Styles)
	inlineLookup := make(map[int32]string, len(g.Styles))
	for i, s := range g.Styles {
		inlineLookup[int32(i)] = inlineStyleString(s)
	}

	// Stable id assignment: "default" (if present) is always state 0,
	// matching DefaultStateID; remaining states get ids in sorted
	// order for determinism.
	names := make([]string, 0, len(rawStates))
	for n := range rawStates {
		names = append(names, n)
	}
	sortStrings(names)
	ids := make(map[string]int32, len(names))
	var next int32 = 1
	if _, ok := rawStates["default"]; ok {
		ids["default"] = DefaultStateID
	}
	for _, n := range names {
		if n == "default" {
			continue
		}
		ids[n] = next
		next++
	}

	sr := &SyntaxRule{
		Name:              g.Name,
		FileExtensions:    normalizeExtensions(g.FileExtensions),
		States:            make(map[int32]*StateRule, len(names)),
		InlineStyleLookup: inlineLookup,
	}
	for _, bp := range g.BlockPairs {
		sr.BlockPairs = append(sr.BlockPairs, BlockPair{Start: bp.Start, End: bp.End})
	}

	for _, name := range names {
		rs := rawStates[name]
		compiled, err := compileState(rs, g.Variables, styleIDs, ids, resolve)
		if err != nil {
			return nil, &ErrMalformed{Err: fmt.Errorf("state %q: %w", name, err)}
		}
		sr.States[ids[name]] = compiled
	}
	if _, ok := sr.States[DefaultStateID]; !ok {
		return nil, &ErrMalformed{Err: fmt.Errorf("grammar %q has no default state", g.Name)}
	}
	return sr, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, len(exts))
	for i, e := range exts {
		if e != "" && e[0] != '.' {
			e = "." + e
		}
		out[i] = strings.ToLower(e)
	}
	return out
}

func inlineStyleString(s jsonStyle) string {
	var b strings.Builder
	if s.Foreground != "" {
		fmt.Fprintf(&b, "color:%s;", s.Foreground)
	}
	if s.Background != "" {
		fmt.Fprintf(&b, "background:%s;", s.Background)
	}
	for _, tag := range s.Tags {
		fmt.Fprintf(&b, "%s:true;", tag)
	}
	return b.String()
}

func compileState(rs rawState, vars map[string]string, styleIDs map[string]int32, stateIDs map[string]int32, resolve Resolver) (*StateRule, error) {
	rules := rs.Rules
	if rs.Reference != "" {
		if resolve == nil {
			return nil, fmt.Errorf("state references %q but no resolver was given", rs.Reference)
		}
		ref, err := resolve(rs.Reference)
		if err != nil {
			return nil, fmt.Errorf("resolving reference %q: %w", rs.Reference, err)
		}
		base, ok := ref.State(DefaultStateID)
		if !ok {
			return nil, fmt.Errorf("referenced grammar %q has no default state", rs.Reference)
		}
		merged := &StateRule{LineEndState: NoLineEndState}
		if rs.OnLineEndState != "" {
			id, ok := stateIDs[rs.OnLineEndState]
			if !ok {
				return nil, fmt.Errorf("unknown onLineEndState %q", rs.OnLineEndState)
			}
			merged.LineEndState = id
		}
		local, err := compileRuleList(rules, vars, styleIDs, stateIDs)
		if err != nil {
			return nil, err
		}
		return combineWithReference(local, base, merged.LineEndState)
	}
	sr, err := compileRuleList(rules, vars, styleIDs, stateIDs)
	if err != nil {
		return nil, err
	}
	if rs.OnLineEndState != "" {
		id, ok := stateIDs[rs.OnLineEndState]
		if !ok {
			return nil, fmt.Errorf("unknown onLineEndState %q", rs.OnLineEndState)
		}
		sr.LineEndState = id
	}
	return sr, nil
}

// combineWithReference builds a StateRule whose rules are the local
// ones followed by the referenced grammar's default-state rules, so
// local exit patterns (e.g. "@end") take priority, per the declared-
// order resolution rule in §4.2 of the tokenizer contract.
func combineWithReference(local, base *StateRule, lineEnd int32) (*StateRule, error) {
	combined := &StateRule{LineEndState: lineEnd}
	combined.TokenRules = append(combined.TokenRules, local.TokenRules...)
	combined.TokenRules = append(combined.TokenRules, base.TokenRules...)
	patterns := make([]string, 0, len(combined.TokenRules))
	offset := 1
	finalRules := make([]TokenRule, 0, len(combined.TokenRules))
	for i, tr := range combined.TokenRules {
		var pat string
		if i < len(local.TokenRules) {
			pat = localPatterns(local)[i]
		} else {
			pat = basePatterns(base)[i-len(local.TokenRules)]
		}
		tr.GroupOffsetStart = offset
		offset += 1 + tr.GroupCount
		finalRules = append(finalRules, tr)
		patterns = append(patterns, "("+pat+")")
		combined.rawPatterns = append(combined.rawPatterns, pat)
	}
	re, err := NewRegexp2Adapter(strings.Join(patterns, "|"))
	if err != nil {
		return nil, err
	}
	combined.Regex = re
	combined.TokenRules = finalRules
	return combined, nil
}

// localPatterns/basePatterns return the source pattern text for each
// rule of an already-compiled StateRule. The combined regex is not
// unwound: compileRuleList and combineWithReference keep the raw
// patterns on the side, in StateRule.rawPatterns.
func localPatterns(sr *StateRule) []string { return sr.rawPatterns }
func basePatterns(sr *StateRule) []string  { return sr.rawPatterns }
