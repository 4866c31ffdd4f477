// Package tokenize produces scoped lexical tokens for the styling engine.
package tokenize

// Token is one lexical token within a line. Start is the rune offset within
// the line; the token implicitly ends where the next token starts, or at the
// line length for the last one. Scopes is the ordered scope path, most
// specific first. A token with no scopes renders with the default style.
type Token struct {
	Start  int
	Scopes []string
}

// LineRange is a 1-based inclusive range of line numbers, the convention
// used by token-change notifications.
type LineRange struct {
	From int
	To   int
}

// Grammar selects the lexer. The styling engine treats it as opaque and
// only forwards it to the model.
type Grammar struct {
	Language string
}

// Model is the tokenizer surface the styling engine consumes.
// TokensForLine returns nil when the line has not been tokenized yet;
// callers defer styling until a change notification arrives.
type Model interface {
	TokensForLine(line int) []Token
	SetGrammar(g Grammar)
	Stopped() bool
}
