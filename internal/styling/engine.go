package styling

import (
	"context"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"go.opentelemetry.io/otel/trace"

	"github.com/avharna/stylet/internal/cachemanager"
	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/tokenize"
	"github.com/avharna/stylet/internal/tracing"
)

// Engine regenerates style annotations for single lines from tokens plus
// the active theme. Styling is lazy: the render pipeline calls StyleLine
// for each line it is about to paint, then reads the resulting spans back
// through the store. The engine implements ColorSource so the renderer can
// resolve annotation colors without seeing any mutable styling state.
type Engine struct {
	doc    document.Reader
	model  tokenize.Model
	theme  Theme
	table  *ColorTable
	spans  *SpanStore
	memo   *cachemanager.Memoizer[string, []Rule, []string]
	tracer *tracing.Provider
}

func NewEngine(doc document.Reader, model tokenize.Model, theme Theme, tracer *tracing.Provider) *Engine {
	e := &Engine{
		doc:    doc,
		model:  model,
		table:  NewColorTable(),
		spans:  NewSpanStore(),
		tracer: tracer,
	}

	matches := cachemanager.NewInMemoryCacheManager[string, []Rule](
		"scope-match", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	e.memo = cachemanager.NewMemoizer[string, []Rule, []string](matches,
		func(_ context.Context, scopes []string) []Rule {
			return e.theme.Match(scopes)
		}, false)

	e.SetTheme(theme)

	return e
}

// Spans exposes the annotation store for the render query path and for
// binding to the document's edit stream.
func (e *Engine) Spans() *SpanStore { return e.spans }

// SetTheme swaps the active theme. The color table is rebuilt, every
// annotation is dropped, and memoized matches are flushed; each line
// restyles on its next paint.
func (e *Engine) SetTheme(theme Theme) {
	e.theme = theme
	e.table.SetTheme(theme)
	e.spans.Clear()
	_ = e.memo.Invalidate(context.Background())

	log.Info(log.CatEngine, "theme changed", "theme", theme.Name(), "colors", e.table.Len())
}

// SetGrammar forwards the grammar to the model and drops all annotations;
// they reference token runs that no longer exist under the new grammar.
func (e *Engine) SetGrammar(g tokenize.Grammar) {
	e.model.SetGrammar(g)
	e.spans.Clear()

	log.Info(log.CatEngine, "grammar changed", "language", g.Language)
}

// StyleLine rebuilds the annotations for one 0-based line from its
// current tokens. When the model has no tokens for the line yet, nothing
// is touched; a later change notification re-triggers the call. After it
// returns, the line's annotations exactly reflect the tokens that matched
// a usable theme rule.
func (e *Engine) StyleLine(line int) {
	tokens := e.model.TokensForLine(line)
	if tokens == nil {
		return
	}

	if e.tracer != nil {
		var span trace.Span
		_, span = e.tracer.Tracer().Start(context.Background(), "restyle-line")
		defer span.End()
	}

	offset, length := e.doc.LineSpan(line)

	for _, sp := range e.spans.FindOverlapping(offset, offset+length) {
		e.spans.Remove(sp)
	}

	for i, tok := range tokens {
		start := tok.Start
		end := length
		if i+1 < len(tokens) {
			end = tokens[i+1].Start
		}
		if start >= end || len(tok.Scopes) == 0 {
			continue
		}

		for _, rule := range e.matchScopes(tok.Scopes) {
			if rule.Foreground > 0 && e.table.Contains(rule.Foreground) {
				e.spans.Add(Span{
					Start:   offset + start,
					End:     offset + end,
					ColorID: rule.Foreground,
				})
				break
			}
		}
	}
}

func (e *Engine) matchScopes(scopes []string) []Rule {
	key := strings.Join(scopes, "\x1f")

	return e.memo.Get(context.Background(), key, scopes, cachemanager.DefaultExpiration)
}

// HasColor implements ColorSource.
func (e *Engine) HasColor(id int) bool {
	return e.table.Contains(id)
}

// ColorFor implements ColorSource. The lookup is checked: a stale or
// foreign identifier reports absence instead of painting garbage.
func (e *Engine) ColorFor(id int) (colorful.Color, bool) {
	return e.table.ColorFor(id)
}
