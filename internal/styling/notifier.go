package styling

import (
	"context"

	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/pubsub"
	"github.com/avharna/stylet/internal/tokenize"
)

// RedrawRequest asks the view to repaint the text covering an absolute
// rune range. Requests are fire-and-forget: painting restyles lazily, so
// duplicate or superseded requests are safe to coalesce or drop.
type RedrawRequest struct {
	Offset int
	Length int
}

// Notifier turns asynchronous token-change notifications into redraw
// requests, but only when the changed lines intersect the visible window.
// Off-screen tokenization churn never costs a repaint. It holds no state
// between calls beyond the visible range it reads.
type Notifier struct {
	doc     document.Reader
	model   tokenize.Model
	visible *VisibleRange
	redraws *pubsub.Broker[RedrawRequest]
}

func NewNotifier(doc document.Reader, model tokenize.Model, visible *VisibleRange) *Notifier {
	return &Notifier{
		doc:     doc,
		model:   model,
		visible: visible,
		redraws: pubsub.NewBroker[RedrawRequest](),
	}
}

// Redraws returns the broker the UI loop drains for repaint requests.
func (n *Notifier) Redraws() *pubsub.Broker[RedrawRequest] { return n.redraws }

func (n *Notifier) Close() {
	n.redraws.Close()
}

// Run forwards token-change events from the model's broker until ctx is
// cancelled. Events arrive on the tokenizer worker; only the published
// redraw request crosses back to the UI loop.
func (n *Notifier) Run(ctx context.Context, changed *pubsub.Broker[tokenize.LineRange]) {
	sub := changed.Subscribe(ctx)

	go func() {
		for ev := range sub {
			n.OnLinesChanged([]tokenize.LineRange{ev.Payload})
		}
	}()
}

// OnLinesChanged intersects the changed line ranges (1-based inclusive)
// with the visible window and publishes a redraw covering the rune span
// of the clamped intersection. Empty input and a stopped model are
// no-ops, as is any disjoint or out-of-document range.
func (n *Notifier) OnLinesChanged(ranges []tokenize.LineRange) {
	if len(ranges) == 0 || n.model.Stopped() {
		return
	}

	// Union bounding range, converted to 0-based.
	first := ranges[0].From - 1
	last := ranges[0].To - 1
	for _, r := range ranges[1:] {
		if r.From-1 < first {
			first = r.From - 1
		}
		if r.To-1 > last {
			last = r.To - 1
		}
	}

	visFirst, visLast := n.visible.Lines()

	// Strict disjointness. The -1 sentinel window rejects everything.
	if last < visFirst || first > visLast {
		return
	}

	lineCount := n.doc.LineCount()
	if lineCount == 0 {
		return
	}

	lo := first
	if visFirst > lo {
		lo = visFirst
	}
	if lo < 0 {
		lo = 0
	}
	hi := last
	if visLast < hi {
		hi = visLast
	}
	if hi > lineCount-1 {
		hi = lineCount - 1
	}
	if lo > hi {
		return
	}

	offset, _ := n.doc.LineSpan(lo)
	endOffset, endLen := n.doc.LineSpan(hi)

	req := RedrawRequest{Offset: offset, Length: endOffset + endLen - offset}
	log.Debug(log.CatEngine, "scheduling redraw",
		"fromLine", lo, "toLine", hi, "offset", req.Offset, "length", req.Length)

	n.redraws.Publish(req)
}
