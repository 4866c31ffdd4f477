package styling

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/tokenize"
)

// Rule is one candidate style from a theme match, carrying a color table
// identifier. Zero means "no foreground", which never styles.
type Rule struct {
	Foreground int
}

// Theme is an immutable snapshot mapping scope paths to style rules.
// ColorMap is the ordered color list; a color's identifier is its index
// plus one, so identifiers are always positive.
type Theme interface {
	Name() string
	ColorMap() []string
	Match(scopes []string) []Rule
}

// ruleSet is the shared matcher behind both theme implementations.
// Scope lookups fall back along the dotted path, "keyword.declaration"
// tries "keyword" before giving up.
type ruleSet struct {
	colors  []string
	byScope map[string]int
}

func newRuleSet() *ruleSet {
	return &ruleSet{byScope: make(map[string]int)}
}

// add registers a scope with its color, deduplicating colors by hex value.
func (r *ruleSet) add(scope, hex string) {
	if scope == "" {
		return
	}
	hex = strings.ToLower(hex)

	id := 0
	for i, c := range r.colors {
		if c == hex {
			id = i + 1
			break
		}
	}
	if id == 0 {
		r.colors = append(r.colors, hex)
		id = len(r.colors)
	}

	r.byScope[scope] = id
}

func (r *ruleSet) match(scopes []string) []Rule {
	var rules []Rule
	for _, scope := range scopes {
		for s := scope; s != ""; s = parentScope(s) {
			if id, ok := r.byScope[s]; ok {
				rules = append(rules, Rule{Foreground: id})
				break
			}
		}
	}

	return rules
}

func parentScope(scope string) string {
	i := strings.LastIndexByte(scope, '.')
	if i < 0 {
		return ""
	}

	return scope[:i]
}

// ChromaTheme adapts an entry from the chroma style registry.
type ChromaTheme struct {
	name  string
	rules *ruleSet
}

// NewChromaTheme builds a theme from a registered chroma style. Unknown
// names fall back to the registry default rather than failing.
func NewChromaTheme(name string) *ChromaTheme {
	style := styles.Get(name)
	if style == nil {
		log.Warn(log.CatTheme, "unknown chroma style, using fallback", "name", name)
		style = styles.Fallback
	}

	rules := newRuleSet()
	base := style.Get(chroma.Text).Colour
	for _, t := range style.Types() {
		scopes := tokenize.ScopesFor(t)
		if len(scopes) == 0 {
			continue
		}
		entry := style.Get(t)
		if !entry.Colour.IsSet() || entry.Colour == base {
			continue
		}
		rules.add(scopes[0], entry.Colour.String())
	}

	return &ChromaTheme{name: style.Name, rules: rules}
}

func (t *ChromaTheme) Name() string               { return t.name }
func (t *ChromaTheme) ColorMap() []string         { return t.rules.colors }
func (t *ChromaTheme) Match(scopes []string) []Rule { return t.rules.match(scopes) }

// FileTheme is a theme loaded from a YAML file of scope to hex color
// pairs. Scope identifiers are assigned in sorted scope order so a given
// file always produces the same color map.
type FileTheme struct {
	name  string
	rules *ruleSet
}

type fileThemeDoc struct {
	Name   string            `yaml:"name"`
	Colors map[string]string `yaml:"colors"`
}

// LoadFileTheme reads and parses a YAML theme file. Entries with invalid
// hex colors are skipped with a warning; a file with no valid entries is
// still a valid (unstyled) theme.
func LoadFileTheme(path string) (*FileTheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var doc fileThemeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme file: %w", err)
	}

	name := doc.Name
	if name == "" {
		name = path
	}

	scopes := make([]string, 0, len(doc.Colors))
	for scope := range doc.Colors {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	rules := newRuleSet()
	for _, scope := range scopes {
		hex := doc.Colors[scope]
		c, err := colorful.Hex(hex)
		if err != nil {
			log.Warn(log.CatTheme, "skipping invalid theme color",
				"scope", scope, "color", hex)
			continue
		}
		rules.add(scope, c.Hex())
	}

	return &FileTheme{name: name, rules: rules}, nil
}

func (t *FileTheme) Name() string                 { return t.name }
func (t *FileTheme) ColorMap() []string           { return t.rules.colors }
func (t *FileTheme) Match(scopes []string) []Rule { return t.rules.match(scopes) }
