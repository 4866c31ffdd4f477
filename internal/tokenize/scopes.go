package tokenize

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// ScopesFor maps a chroma token type onto an ordered scope path, most
// specific first, e.g. LiteralStringDouble becomes
// ["literal.string.double", "literal.string", "literal"]. Plain text and
// unlexable input carry no scopes.
func ScopesFor(t chroma.TokenType) []string {
	if t == chroma.None || t == chroma.Text {
		return nil
	}

	// Category arithmetic only holds for the positive token type space.
	scopes := []string{camelToDots(t.String())}
	sub := t.SubCategory()
	if sub != t && sub > 0 {
		scopes = append(scopes, camelToDots(sub.String()))
	}
	if cat := t.Category(); cat != t && cat != sub && cat > 0 {
		scopes = append(scopes, camelToDots(cat.String()))
	}

	return scopes
}

// camelToDots lowers a CamelCase token type name into a dotted scope,
// "KeywordDeclaration" -> "keyword.declaration".
func camelToDots(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteRune(r - 'A' + 'a')
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
