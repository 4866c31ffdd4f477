package tokenize

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"go.opentelemetry.io/otel/trace"

	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/pubsub"
	"github.com/avharna/stylet/internal/tracing"
)

// ChromaModel tokenizes a document with a chroma lexer on a background
// worker. Tokenization always runs over the full buffer so multi-line
// constructs lex correctly; results are applied only when no edit arrived
// while the pass ran, otherwise the pass is discarded and the queued edit
// event triggers a fresh one.
type ChromaModel struct {
	doc    *document.TextDocument
	tracer *tracing.Provider

	mu    sync.RWMutex
	lexer chroma.Lexer
	lines [][]Token

	editSeq atomic.Int64
	stopped atomic.Bool

	changed *pubsub.Broker[LineRange]
	kick    chan struct{}
}

func NewChromaModel(doc *document.TextDocument, tracer *tracing.Provider) *ChromaModel {
	m := &ChromaModel{
		doc:     doc,
		tracer:  tracer,
		changed: pubsub.NewBroker[LineRange](),
		kick:    make(chan struct{}, 1),
	}

	doc.OnEdit(func(document.EditEvent) {
		m.editSeq.Add(1)
	})

	return m
}

// Changed returns the broker carrying token-change notifications,
// 1-based inclusive line ranges.
func (m *ChromaModel) Changed() *pubsub.Broker[LineRange] { return m.changed }

func (m *ChromaModel) Stopped() bool { return m.stopped.Load() }

// Stop marks the model stopped. Change notifications cease; consumers
// treat a stopped model as having nothing further to say.
func (m *ChromaModel) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		m.changed.Close()
	}
}

// TokensForLine returns the tokens for a 0-based line index, or nil when
// the line is unknown or not yet tokenized.
func (m *ChromaModel) TokensForLine(line int) []Token {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if line < 0 || line >= len(m.lines) {
		return nil
	}

	return m.lines[line]
}

// SetGrammar swaps the lexer and drops all tokens. The next pass
// retokenizes the whole buffer under the new grammar.
func (m *ChromaModel) SetGrammar(g Grammar) {
	lexer := lexers.Get(g.Language)
	if lexer == nil {
		log.Warn(log.CatTokens, "no lexer for language, using fallback", "language", g.Language)
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	m.mu.Lock()
	m.lexer = lexer
	m.lines = nil
	m.mu.Unlock()

	m.editSeq.Add(1)
	m.requestPass()
}

// Start runs the tokenizer worker until ctx is cancelled. It reacts to
// document edits and grammar swaps.
func (m *ChromaModel) Start(ctx context.Context) {
	events := m.doc.Events().Subscribe(ctx)

	go func() {
		m.runPass(ctx)

		for {
			select {
			case <-ctx.Done():
				m.Stop()
				return
			case _, ok := <-events:
				if !ok {
					m.Stop()
					return
				}
				m.runPass(ctx)
			case <-m.kick:
				m.runPass(ctx)
			}
		}
	}()
}

func (m *ChromaModel) requestPass() {
	select {
	case m.kick <- struct{}{}:
	default:
	}
}

func (m *ChromaModel) runPass(ctx context.Context) {
	if m.stopped.Load() {
		return
	}

	m.mu.RLock()
	lexer := m.lexer
	m.mu.RUnlock()
	if lexer == nil {
		return
	}

	seq := m.editSeq.Load()
	text := m.doc.Text()

	if m.tracer != nil {
		var span trace.Span
		_, span = m.tracer.Tracer().Start(ctx, "tokenize-pass")
		defer span.End()
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		log.ErrorErr(log.CatTokens, "tokenise failed", err)
		return
	}

	tokenLines := chroma.SplitTokensIntoLines(iterator.Tokens())
	newLines := make([][]Token, len(tokenLines))
	for i, toks := range tokenLines {
		newLines[i] = convertLine(toks)
	}

	// An edit arrived mid-pass; its event is already queued and will
	// trigger a fresh pass over the new text.
	if m.editSeq.Load() != seq {
		log.Debug(log.CatTokens, "discarding stale tokenize pass", "seq", seq)
		return
	}

	m.mu.Lock()
	old := m.lines
	m.lines = newLines
	m.mu.Unlock()

	if r, ok := changedRange(old, newLines); ok {
		log.Debug(log.CatTokens, "tokens changed", "from", r.From, "to", r.To)
		m.changed.Publish(r)
	}
}

// convertLine turns one line of chroma tokens into the engine's token form.
// Rune offsets accumulate across the line; zero-width tokens and trailing
// newlines contribute nothing.
func convertLine(toks []chroma.Token) []Token {
	out := make([]Token, 0, len(toks))
	cp := 0
	for _, tok := range toks {
		value := tok.Value
		if n := len(value); n > 0 && value[n-1] == '\n' {
			value = value[:n-1]
		}
		width := len([]rune(value))
		if width == 0 {
			continue
		}
		out = append(out, Token{Start: cp, Scopes: ScopesFor(tok.Type)})
		cp += width
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// changedRange reports the bounding 1-based line range over which two
// tokenizations differ.
func changedRange(prev, next [][]Token) (LineRange, bool) {
	n := len(next)
	if len(prev) > n {
		n = len(prev)
	}
	if n == 0 {
		return LineRange{}, false
	}

	first := -1
	last := -1
	for i := 0; i < n; i++ {
		if !lineEqual(lineAt(prev, i), lineAt(next, i)) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return LineRange{}, false
	}

	return LineRange{From: first + 1, To: last + 1}, true
}

func lineAt(lines [][]Token, i int) []Token {
	if i < 0 || i >= len(lines) {
		return nil
	}

	return lines[i]
}

func lineEqual(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Start != b[i].Start {
			return false
		}
		if len(a[i].Scopes) != len(b[i].Scopes) {
			return false
		}
		for j := range a[i].Scopes {
			if a[i].Scopes[j] != b[i].Scopes[j] {
				return false
			}
		}
	}

	return true
}
