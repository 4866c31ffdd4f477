// Package document holds the text buffer the styling engine annotates.
//
// A TextDocument stores lines of runes with a cached line-start offset index
// so that line lookups and absolute rune offsets stay cheap. Every mutation
// produces an EditEvent that is delivered synchronously to registered
// observers (so annotation stores can shift their offsets within the same
// mutation) and then published asynchronously over a broker for background
// consumers like the tokenizer.
package document

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/avharna/stylet/internal/log"
	"github.com/avharna/stylet/internal/pubsub"
)

// EditEvent describes a single buffer mutation in absolute rune offsets.
// A replacement carries both a deletion and an insertion at the same spot.
type EditEvent struct {
	DocID       uuid.UUID
	DeletedAt   int
	DeletedLen  int
	InsertedAt  int
	InsertedLen int
	FromLine    int // first affected line, 0-based
	LineDelta   int
}

// LineRange is a 0-based inclusive range of line indexes.
type LineRange struct {
	From int
	To   int
}

// Reader is the read-only surface the styling engine and renderer need.
type Reader interface {
	LineCount() int
	LineSpan(n int) (offset, length int)
	LineText(n int) string
}

// TextDocument is the concrete buffer. The UI loop is the sole mutator;
// reads may come from the tokenizer worker, so access is lock-guarded.
type TextDocument struct {
	mu     sync.RWMutex
	id     uuid.UUID
	lines  [][]rune
	starts []int

	observers []func(EditEvent)
	events    *pubsub.Broker[EditEvent]
}

func New(text string) *TextDocument {
	d := &TextDocument{
		id:     uuid.New(),
		lines:  splitLines(text),
		events: pubsub.NewBroker[EditEvent](),
	}
	d.rebuildStarts()

	return d
}

func (d *TextDocument) ID() uuid.UUID { return d.id }

// Events returns the broker carrying edit events for async consumers.
func (d *TextDocument) Events() *pubsub.Broker[EditEvent] { return d.events }

// OnEdit registers a synchronous observer. Observers run on the mutating
// goroutine before the async event is published, so offset adjustments
// they make are visible to any code running after the mutation returns.
func (d *TextDocument) OnEdit(fn func(EditEvent)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, fn)
}

func (d *TextDocument) Close() {
	d.events.Close()
}

func (d *TextDocument) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var sb strings.Builder
	for i, line := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}

	return sb.String()
}

func (d *TextDocument) LineCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.lines)
}

// Length returns the total rune length of the document, counting one rune
// per line separator.
func (d *TextDocument) Length() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.length()
}

// LineSpan returns the absolute rune offset and rune length of line n,
// excluding the trailing separator. Out-of-range lines report (0, 0).
func (d *TextDocument) LineSpan(n int) (int, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if n < 0 || n >= len(d.lines) {
		return 0, 0
	}

	return d.starts[n], len(d.lines[n])
}

func (d *TextDocument) LineText(n int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if n < 0 || n >= len(d.lines) {
		return ""
	}

	return string(d.lines[n])
}

// Insert splices text at the given absolute rune offset. Offsets beyond the
// end of the document are clamped.
func (d *TextDocument) Insert(offset int, text string) {
	if text == "" {
		return
	}

	d.mu.Lock()

	offset = clamp(offset, 0, d.length())
	row, col := d.locate(offset)

	parts := strings.Split(text, "\n")
	insertedLen := 0
	for i, p := range parts {
		if i > 0 {
			insertedLen++
		}
		insertedLen += len([]rune(p))
	}

	line := d.lines[row]
	if col > len(line) {
		col = len(line)
	}

	if len(parts) == 1 {
		merged := make([]rune, 0, len(line)+insertedLen)
		merged = append(merged, line[:col]...)
		merged = append(merged, []rune(parts[0])...)
		merged = append(merged, line[col:]...)
		d.lines[row] = merged
	} else {
		tail := append([]rune{}, line[col:]...)

		head := append([]rune{}, line[:col]...)
		d.lines[row] = append(head, []rune(parts[0])...)

		newLines := make([][]rune, 0, len(parts)-1)
		for _, p := range parts[1 : len(parts)-1] {
			newLines = append(newLines, []rune(p))
		}
		last := append([]rune(parts[len(parts)-1]), tail...)
		newLines = append(newLines, last)

		rest := append([][]rune{}, d.lines[row+1:]...)
		d.lines = append(d.lines[:row+1], newLines...)
		d.lines = append(d.lines, rest...)
	}

	d.rebuildStarts()

	ev := EditEvent{
		DocID:       d.id,
		InsertedAt:  offset,
		InsertedLen: insertedLen,
		FromLine:    row,
		LineDelta:   len(parts) - 1,
	}
	d.mu.Unlock()

	d.notify(ev)
}

// Delete removes length runes starting at the given absolute offset.
// The range is clamped to the document.
func (d *TextDocument) Delete(offset, length int) {
	d.mu.Lock()

	total := d.length()
	offset = clamp(offset, 0, total)
	if offset+length > total {
		length = total - offset
	}
	if length <= 0 {
		d.mu.Unlock()
		return
	}

	startRow, startCol := d.locate(offset)
	endRow, endCol := d.locate(offset + length)

	startLine := d.lines[startRow]
	if startCol > len(startLine) {
		startCol = len(startLine)
	}
	endLine := d.lines[endRow]
	if endCol > len(endLine) {
		endCol = len(endLine)
	}

	merged := make([]rune, 0, startCol+len(endLine)-endCol)
	merged = append(merged, startLine[:startCol]...)
	merged = append(merged, endLine[endCol:]...)

	d.lines[startRow] = merged
	d.lines = append(d.lines[:startRow+1], d.lines[endRow+1:]...)
	d.rebuildStarts()

	ev := EditEvent{
		DocID:      d.id,
		DeletedAt:  offset,
		DeletedLen: length,
		FromLine:   startRow,
		LineDelta:  -(endRow - startRow),
	}
	d.mu.Unlock()

	d.notify(ev)
}

// SetText replaces the whole buffer and returns the line ranges that
// actually changed, computed with a line-mode diff against the old text.
// The edit event still describes a full replacement; the returned ranges
// are damage hints for retokenization.
func (d *TextDocument) SetText(text string) []LineRange {
	d.mu.Lock()

	old := make([]string, len(d.lines))
	for i, l := range d.lines {
		old[i] = string(l)
	}
	oldText := strings.Join(old, "\n")
	oldLen := d.length()
	oldLines := len(d.lines)

	d.lines = splitLines(text)
	d.rebuildStarts()
	newLen := d.length()
	newLines := len(d.lines)

	ev := EditEvent{
		DocID:       d.id,
		DeletedAt:   0,
		DeletedLen:  oldLen,
		InsertedAt:  0,
		InsertedLen: newLen,
		FromLine:    0,
		LineDelta:   newLines - oldLines,
	}
	d.mu.Unlock()

	d.notify(ev)

	ranges := ChangedLineRanges(oldText, text)
	for i := range ranges {
		if ranges[i].To >= newLines {
			ranges[i].To = newLines - 1
		}
		if ranges[i].From > ranges[i].To {
			ranges[i].From = ranges[i].To
		}
	}

	log.Debug(log.CatDoc, "buffer replaced",
		"doc", d.id.String(),
		"lines", newLines,
		"changedRanges", len(ranges))

	return ranges
}

func (d *TextDocument) notify(ev EditEvent) {
	d.mu.RLock()
	observers := append([]func(EditEvent){}, d.observers...)
	d.mu.RUnlock()

	for _, fn := range observers {
		fn(ev)
	}

	d.events.Publish(ev)
}

// locate maps an absolute rune offset to (row, column). The column may
// equal the line length, which addresses the separator position.
// Callers must hold at least the read lock.
func (d *TextDocument) locate(offset int) (int, int) {
	row := sort.Search(len(d.starts), func(i int) bool {
		return d.starts[i] > offset
	}) - 1
	if row < 0 {
		row = 0
	}

	return row, offset - d.starts[row]
}

func (d *TextDocument) length() int {
	last := len(d.lines) - 1

	return d.starts[last] + len(d.lines[last])
}

func (d *TextDocument) rebuildStarts() {
	if cap(d.starts) < len(d.lines) {
		d.starts = make([]int, len(d.lines))
	}
	d.starts = d.starts[:len(d.lines)]

	off := 0
	for i, line := range d.lines {
		d.starts[i] = off
		off += len(line) + 1
	}
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}

	return lines
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
