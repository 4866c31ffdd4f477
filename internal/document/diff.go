package document

import (
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangedLineRanges diffs two texts at line granularity and returns the
// 0-based inclusive line ranges of the new text that differ from the old.
// A pure deletion marks the join line, since its styling context changed.
func ChangedLineRanges(oldText, newText string) []LineRange {
	if oldText == newText {
		return nil
	}

	dmp := diffmatchpatch.New()
	a, b, _ := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffMainRunes(a, b, false)

	var ranges []LineRange
	line := 0
	for _, df := range diffs {
		// In line mode each rune stands for one whole line.
		n := len([]rune(df.Text))
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffDelete:
			ranges = append(ranges, LineRange{From: line, To: line})
		case diffmatchpatch.DiffInsert:
			ranges = append(ranges, LineRange{From: line, To: line + n - 1})
			line += n
		}
	}

	return mergeLineRanges(ranges)
}

// mergeLineRanges sorts and coalesces overlapping or adjacent ranges.
func mergeLineRanges(ranges []LineRange) []LineRange {
	if len(ranges) <= 1 {
		return ranges
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].From < ranges[j].From
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.From <= last.To+1 {
			if r.To > last.To {
				last.To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}

	return merged
}
