package styling

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/tokenize"
)

type stubModel struct {
	lines      map[int][]tokenize.Token
	stopped    bool
	grammar    tokenize.Grammar
	grammarSet bool
}

func (m *stubModel) TokensForLine(line int) []tokenize.Token { return m.lines[line] }
func (m *stubModel) Stopped() bool                           { return m.stopped }
func (m *stubModel) SetGrammar(g tokenize.Grammar) {
	m.grammar = g
	m.grammarSet = true
}

type stubTheme struct {
	name   string
	colors []string
	rules  map[string]int
}

func (t stubTheme) Name() string       { return t.name }
func (t stubTheme) ColorMap() []string { return t.colors }
func (t stubTheme) Match(scopes []string) []Rule {
	var out []Rule
	for _, s := range scopes {
		if id, ok := t.rules[s]; ok {
			out = append(out, Rule{Foreground: id})
		}
	}

	return out
}

// catchAllTheme styles every scoped token with color 1.
var catchAllTheme = stubTheme{
	name:   "catch-all",
	colors: []string{"#ffffff"},
	rules:  map[string]int{"any": 1},
}

func TestStyleLine_KeywordOnly(t *testing.T) {
	// Color identifier 5 maps to red; only "keyword" has a rule.
	doc := document.New("let x = 1")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {
			{Start: 0, Scopes: []string{"keyword"}},
			{Start: 3, Scopes: []string{"variable"}},
			{Start: 5, Scopes: []string{"operator"}},
		},
	}}
	theme := stubTheme{
		name:   "red-keywords",
		colors: []string{"#111111", "#222222", "#333333", "#444444", "#ff0000"},
		rules:  map[string]int{"keyword": 5},
	}

	e := NewEngine(doc, model, theme, nil)
	e.StyleLine(0)

	require.Equal(t, []Span{{Start: 0, End: 3, ColorID: 5}}, e.Spans().Spans())

	c, ok := e.ColorFor(5)
	require.True(t, ok)
	require.Equal(t, "#ff0000", c.Hex())
}

func TestStyleLine_Idempotent(t *testing.T) {
	doc := document.New("let x = 1")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {
			{Start: 0, Scopes: []string{"any"}},
			{Start: 3, Scopes: []string{"any"}},
		},
	}}

	e := NewEngine(doc, model, catchAllTheme, nil)

	e.StyleLine(0)
	first := e.Spans().Spans()

	e.StyleLine(0)
	second := e.Spans().Spans()

	require.Equal(t, first, second, "restyling without changes leaks or duplicates nothing")
	require.Len(t, second, 2)
}

func TestStyleLine_NoTokensLeavesAnnotationsUntouched(t *testing.T) {
	doc := document.New("stale line")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{}}
	e := NewEngine(doc, model, catchAllTheme, nil)
	e.Spans().Add(Span{Start: 0, End: 5, ColorID: 1})

	e.StyleLine(0)

	require.Equal(t, []Span{{Start: 0, End: 5, ColorID: 1}}, e.Spans().Spans(),
		"styling defers until tokens exist")
}

func TestStyleLine_RemovesStaleAnnotations(t *testing.T) {
	doc := document.New("abcdef")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {{Start: 2, Scopes: []string{"any"}}},
	}}
	e := NewEngine(doc, model, catchAllTheme, nil)
	e.Spans().Add(Span{Start: 0, End: 6, ColorID: 1})

	e.StyleLine(0)

	require.Equal(t, []Span{{Start: 2, End: 6, ColorID: 1}}, e.Spans().Spans())
}

func TestStyleLine_SkipsScopelessAndEmptyTokens(t *testing.T) {
	doc := document.New("ab cd")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {
			{Start: 0, Scopes: []string{"any"}},
			{Start: 2, Scopes: nil},             // scopeless
			{Start: 3, Scopes: []string{"any"}}, // empty range, same start as next
			{Start: 3, Scopes: []string{"any"}},
			{Start: 5, Scopes: []string{"any"}}, // empty range at line end
		},
	}}
	e := NewEngine(doc, model, catchAllTheme, nil)

	e.StyleLine(0)

	require.Equal(t, []Span{
		{Start: 0, End: 2, ColorID: 1},
		{Start: 3, End: 5, ColorID: 1},
	}, e.Spans().Spans())
}

func TestStyleLine_SecondLineUsesAbsoluteOffsets(t *testing.T) {
	doc := document.New("first\nsecond")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		1: {{Start: 2, Scopes: []string{"any"}}},
	}}
	e := NewEngine(doc, model, catchAllTheme, nil)

	e.StyleLine(1)

	// Line 1 starts at rune offset 6.
	require.Equal(t, []Span{{Start: 8, End: 12, ColorID: 1}}, e.Spans().Spans())
}

func TestStyleLine_UnmatchedRuleFallsThrough(t *testing.T) {
	doc := document.New("word")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {{Start: 0, Scopes: []string{"mystery"}}},
	}}
	e := NewEngine(doc, model, catchAllTheme, nil)

	e.StyleLine(0)

	require.Zero(t, e.Spans().Len(), "no qualifying rule means default styling, not an error")
}

func TestStyleLine_RuleWithAbsentColorIsSkipped(t *testing.T) {
	doc := document.New("word")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {{Start: 0, Scopes: []string{"any"}}},
	}}
	// Rule points at identifier 9 which is not in the single-color map.
	theme := stubTheme{
		name:   "dangling",
		colors: []string{"#ffffff"},
		rules:  map[string]int{"any": 9},
	}
	e := NewEngine(doc, model, theme, nil)

	e.StyleLine(0)

	require.Zero(t, e.Spans().Len())
}

func TestSetTheme_ClearsSpansAndRebuildsTable(t *testing.T) {
	doc := document.New("let x = 1")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {{Start: 0, Scopes: []string{"any"}}},
	}}
	e := NewEngine(doc, model, catchAllTheme, nil)
	e.StyleLine(0)
	require.NotZero(t, e.Spans().Len())

	next := stubTheme{
		name:   "two-color",
		colors: []string{"#112233", "#445566"},
		rules:  map[string]int{"any": 2},
	}
	e.SetTheme(next)

	require.Zero(t, e.Spans().Len(), "annotations never survive a theme change")
	require.True(t, e.HasColor(1))
	require.True(t, e.HasColor(2))
	require.False(t, e.HasColor(3), "table holds exactly the new color map")

	// Restyling under the new theme resolves through the new rules.
	e.StyleLine(0)
	spans := e.Spans().Spans()
	require.Len(t, spans, 1)
	require.Equal(t, 2, spans[0].ColorID)
}

func TestSetGrammar_ForwardsAndClears(t *testing.T) {
	doc := document.New("let x = 1")
	defer doc.Close()

	model := &stubModel{lines: map[int][]tokenize.Token{
		0: {{Start: 0, Scopes: []string{"any"}}},
	}}
	e := NewEngine(doc, model, catchAllTheme, nil)
	e.StyleLine(0)
	require.NotZero(t, e.Spans().Len())

	e.SetGrammar(tokenize.Grammar{Language: "rust"})

	require.True(t, model.grammarSet)
	require.Equal(t, "rust", model.grammar.Language)
	require.Zero(t, e.Spans().Len())
}

func TestStyleLine_PartitionCoversLine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lineLen := rapid.IntRange(1, 60).Draw(t, "lineLen")

		startSet := map[int]struct{}{0: {}}
		extra := rapid.SliceOfN(rapid.IntRange(0, lineLen-1), 0, 8).Draw(t, "starts")
		for _, s := range extra {
			startSet[s] = struct{}{}
		}
		starts := make([]int, 0, len(startSet))
		for s := range startSet {
			starts = append(starts, s)
		}
		sort.Ints(starts)

		tokens := make([]tokenize.Token, len(starts))
		for i, s := range starts {
			tokens[i] = tokenize.Token{Start: s, Scopes: []string{"any"}}
		}

		doc := document.New(strings.Repeat("a", lineLen))
		defer doc.Close()

		model := &stubModel{lines: map[int][]tokenize.Token{0: tokens}}
		e := NewEngine(doc, model, catchAllTheme, nil)
		e.StyleLine(0)

		spans := e.Spans().Spans()

		// Every token qualifies, so the spans are the raw partition:
		// contiguous, non-overlapping, covering [0, lineLen) exactly.
		require.NotEmpty(t, spans)
		require.Equal(t, 0, spans[0].Start)
		for i := 1; i < len(spans); i++ {
			require.Equal(t, spans[i-1].End, spans[i].Start, "no gaps, no overlaps")
		}
		require.Equal(t, lineLen, spans[len(spans)-1].End)
	})
}
