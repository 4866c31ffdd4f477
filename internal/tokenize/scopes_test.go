package tokenize

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"
)

func TestScopesFor(t *testing.T) {
	tests := []struct {
		name string
		typ  chroma.TokenType
		want []string
	}{
		{
			name: "plain text has no scopes",
			typ:  chroma.Text,
			want: nil,
		},
		{
			name: "none has no scopes",
			typ:  chroma.None,
			want: nil,
		},
		{
			name: "category token",
			typ:  chroma.Keyword,
			want: []string{"keyword"},
		},
		{
			name: "direct child of category",
			typ:  chroma.KeywordDeclaration,
			want: []string{"keyword.declaration", "keyword"},
		},
		{
			name: "two-level hierarchy",
			typ:  chroma.LiteralStringDouble,
			want: []string{"literal.string.double", "literal.string", "literal"},
		},
		{
			name: "name function",
			typ:  chroma.NameFunction,
			want: []string{"name.function", "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ScopesFor(tt.typ))
		})
	}
}

func TestCamelToDots(t *testing.T) {
	require.Equal(t, "keyword", camelToDots("Keyword"))
	require.Equal(t, "comment.single", camelToDots("CommentSingle"))
	require.Equal(t, "literal.string.double", camelToDots("LiteralStringDouble"))
}
