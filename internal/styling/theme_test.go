package styling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleSet_MatchFallsBackAlongScopePath(t *testing.T) {
	r := newRuleSet()
	r.add("keyword", "#ff0000")
	r.add("literal.string", "#00ff00")

	tests := []struct {
		name   string
		scopes []string
		want   []Rule
	}{
		{
			name:   "exact match",
			scopes: []string{"keyword"},
			want:   []Rule{{Foreground: 1}},
		},
		{
			name:   "falls back to parent scope",
			scopes: []string{"keyword.declaration"},
			want:   []Rule{{Foreground: 1}},
		},
		{
			name:   "two-level fallback",
			scopes: []string{"literal.string.double"},
			want:   []Rule{{Foreground: 2}},
		},
		{
			name:   "no rule at all",
			scopes: []string{"comment.line"},
			want:   nil,
		},
		{
			name:   "one rule per scope in order",
			scopes: []string{"literal.string", "keyword"},
			want:   []Rule{{Foreground: 2}, {Foreground: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.match(tt.scopes))
		})
	}
}

func TestRuleSet_AddDeduplicatesColors(t *testing.T) {
	r := newRuleSet()
	r.add("keyword", "#AB12CD")
	r.add("name.function", "#ab12cd")

	require.Equal(t, []string{"#ab12cd"}, r.colors)
	require.Equal(t, 1, r.byScope["keyword"])
	require.Equal(t, 1, r.byScope["name.function"])
}

func TestParentScope(t *testing.T) {
	require.Equal(t, "literal.string", parentScope("literal.string.double"))
	require.Equal(t, "literal", parentScope("literal.string"))
	require.Equal(t, "", parentScope("literal"))
}

func TestNewChromaTheme_KnownStyle(t *testing.T) {
	theme := NewChromaTheme("monokai")

	require.NotEmpty(t, theme.ColorMap())

	rules := theme.Match([]string{"keyword"})
	require.NotEmpty(t, rules, "monokai styles keywords")
	require.Positive(t, rules[0].Foreground)
	require.LessOrEqual(t, rules[0].Foreground, len(theme.ColorMap()))
}

func TestNewChromaTheme_UnknownStyleFallsBack(t *testing.T) {
	theme := NewChromaTheme("no-such-style")

	require.NotNil(t, theme)
	require.NotEmpty(t, theme.Name())
}

func TestLoadFileTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	content := `name: test-theme
colors:
  keyword: "#ff7b72"
  name.function: "#d2a8ff"
  comment: "#8b949e"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	theme, err := LoadFileTheme(path)
	require.NoError(t, err)

	require.Equal(t, "test-theme", theme.Name())
	require.Len(t, theme.ColorMap(), 3)

	rules := theme.Match([]string{"keyword.namespace"})
	require.Len(t, rules, 1)
	require.Positive(t, rules[0].Foreground)
}

func TestLoadFileTheme_SkipsInvalidColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	content := `name: broken
colors:
  keyword: "#ff7b72"
  comment: "not-a-color"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	theme, err := LoadFileTheme(path)
	require.NoError(t, err)

	require.Len(t, theme.ColorMap(), 1)
	require.Empty(t, theme.Match([]string{"comment"}))
	require.Len(t, theme.Match([]string{"keyword"}), 1)
}

func TestLoadFileTheme_MissingFile(t *testing.T) {
	_, err := LoadFileTheme(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFileTheme_DeterministicColorIDs(t *testing.T) {
	dir := t.TempDir()
	content := `colors:
  zebra: "#111111"
  alpha: "#222222"
  mid: "#333333"
`
	pathA := filepath.Join(dir, "a.yaml")
	pathB := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(pathA, []byte(content), 0644))
	require.NoError(t, os.WriteFile(pathB, []byte(content), 0644))

	a, err := LoadFileTheme(pathA)
	require.NoError(t, err)
	b, err := LoadFileTheme(pathB)
	require.NoError(t, err)

	require.Equal(t, a.ColorMap(), b.ColorMap())
	require.Equal(t, a.Match([]string{"zebra"}), b.Match([]string{"zebra"}))
}
