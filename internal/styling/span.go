package styling

import (
	"sort"

	"github.com/avharna/stylet/internal/document"
	"github.com/avharna/stylet/internal/log"
)

// Span is one style annotation: a half-open interval of absolute rune
// offsets carrying a color table identifier.
type Span struct {
	Start   int
	End     int
	ColorID int
}

// SpanStore keeps spans sorted by start offset. Spans never overlap, so
// start order implies end order and overlap queries can binary search on
// the end offset. The store is bound to a document's edit stream: each
// insertion or deletion shifts, truncates, or drops spans transactionally
// before the edit call returns.
type SpanStore struct {
	spans []Span
}

func NewSpanStore() *SpanStore {
	return &SpanStore{}
}

// Bind subscribes the store to a document's synchronous edit stream.
func (s *SpanStore) Bind(doc *document.TextDocument) {
	doc.OnEdit(func(ev document.EditEvent) {
		if ev.DeletedLen > 0 {
			s.Delete(ev.DeletedAt, ev.DeletedLen)
		}
		if ev.InsertedLen > 0 {
			s.Insert(ev.InsertedAt, ev.InsertedLen)
		}
	})
}

func (s *SpanStore) Len() int {
	return len(s.spans)
}

// Spans returns a copy of all spans in start order.
func (s *SpanStore) Spans() []Span {
	if len(s.spans) == 0 {
		return nil
	}
	out := make([]Span, len(s.spans))
	copy(out, s.spans)

	return out
}

// FindOverlapping returns the spans intersecting the half-open rune range
// [start, end), in start order.
func (s *SpanStore) FindOverlapping(start, end int) []Span {
	if len(s.spans) == 0 || start >= end {
		return nil
	}

	// Spans before this index end too early to overlap.
	first := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].End > start
	})

	var result []Span
	for i := first; i < len(s.spans); i++ {
		if s.spans[i].Start >= end {
			break
		}
		result = append(result, s.spans[i])
	}

	return result
}

// Add inserts a span, keeping start order. Zero-width spans are ignored.
func (s *SpanStore) Add(sp Span) {
	if sp.Start >= sp.End {
		return
	}

	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].Start >= sp.Start
	})

	s.spans = append(s.spans, Span{})
	copy(s.spans[i+1:], s.spans[i:])
	s.spans[i] = sp
}

// Remove deletes the first span equal to sp. Removing a span that is not
// present is a no-op.
func (s *SpanStore) Remove(sp Span) {
	i := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].Start >= sp.Start
	})

	for ; i < len(s.spans) && s.spans[i].Start == sp.Start; i++ {
		if s.spans[i] == sp {
			s.spans = append(s.spans[:i], s.spans[i+1:]...)
			return
		}
	}
}

// Clear drops every span. Used on theme or grammar change.
func (s *SpanStore) Clear() {
	log.Debug(log.CatSpans, "store cleared", "dropped", len(s.spans))
	s.spans = s.spans[:0]
}

// Insert shifts spans for a text insertion of length runes at pos.
// Spans starting at or after pos move wholly; a span straddling pos
// stretches to keep covering the same trailing text.
func (s *SpanStore) Insert(pos, length int) {
	if length <= 0 {
		return
	}

	for i := range s.spans {
		sp := &s.spans[i]
		switch {
		case sp.Start >= pos:
			sp.Start += length
			sp.End += length
		case sp.End > pos:
			sp.End += length
		}
	}
}

// Delete adjusts spans for a deletion of the half-open range
// [pos, pos+length). Spans fully inside the range are dropped, spans
// straddling it are truncated, spans after it shift left.
func (s *SpanStore) Delete(pos, length int) {
	if length <= 0 {
		return
	}
	cut := pos + length

	kept := s.spans[:0]
	for _, sp := range s.spans {
		if sp.Start >= cut {
			sp.Start -= length
			sp.End -= length
		} else {
			if sp.Start > pos {
				sp.Start = pos
			}
			if sp.End > cut {
				sp.End -= length
			} else if sp.End > pos {
				sp.End = pos
			}
		}
		if sp.Start < sp.End {
			kept = append(kept, sp)
		}
	}
	s.spans = kept
}
