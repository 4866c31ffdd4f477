package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangedLineRanges(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want []LineRange
	}{
		{
			name: "identical texts",
			old:  "a\nb\nc",
			new:  "a\nb\nc",
			want: nil,
		},
		{
			name: "single line edited",
			old:  "a\nb\nc",
			new:  "a\nB\nc",
			want: []LineRange{{From: 1, To: 1}},
		},
		{
			name: "lines appended",
			old:  "a\nb",
			new:  "a\nb\nc\nd",
			want: []LineRange{{From: 1, To: 3}},
		},
		{
			name: "line removed marks join point",
			old:  "a\nb\nc",
			new:  "a\nc",
			want: []LineRange{{From: 1, To: 1}},
		},
		{
			name: "disjoint edits stay separate",
			old:  "a\nb\nc\nd\ne\nf\ng",
			new:  "A\nb\nc\nd\ne\nf\nG",
			want: []LineRange{{From: 0, To: 0}, {From: 6, To: 6}},
		},
		{
			name: "adjacent edits coalesce",
			old:  "a\nb\nc\nd",
			new:  "a\nB\nC\nd",
			want: []LineRange{{From: 1, To: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChangedLineRanges(tt.old, tt.new)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMergeLineRanges_Overlapping(t *testing.T) {
	got := mergeLineRanges([]LineRange{
		{From: 5, To: 8},
		{From: 1, To: 3},
		{From: 7, To: 12},
	})

	require.Equal(t, []LineRange{{From: 1, To: 3}, {From: 5, To: 12}}, got)
}
