package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInsights(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		max  int
		want []string
	}{
		{
			name: "numbered list",
			raw:  "1. First.\n2. Second.\n3. Third.",
			max:  5,
			want: []string{"First.", "Second.", "Third."},
		},
		{
			name: "gapped numbering keeps order of appearance",
			raw:  "1. First.\n2. Second.\n4. Third.\n7. Fourth.\n9. Fifth.",
			max:  5,
			want: []string{"First.", "Second.", "Third.", "Fourth.", "Fifth."},
		},
		{
			name: "paren numbering and bullets",
			raw:  "1) First.\n- Second.\n• Third.\n* Fourth.",
			max:  5,
			want: []string{"First.", "Second.", "Third.", "Fourth."},
		},
		{
			name: "preamble without list marker is skipped",
			raw:  "Here are the insights:\n1. First.\n2. Second.",
			max:  5,
			want: []string{"First.", "Second."},
		},
		{
			name: "plain lines when no markers at all",
			raw:  "First point.\n\nSecond point.",
			max:  5,
			want: []string{"First point.", "Second point."},
		},
		{
			name: "capped at max",
			raw:  "1. a1\n2. a2\n3. a3\n4. a4",
			max:  2,
			want: []string{"a1", "a2"},
		},
		{
			name: "emphasis markers stripped",
			raw:  "1. **S&P 500** rose `1.2%` on *strong* __earnings__.",
			max:  5,
			want: []string{"S&P 500 rose 1.2% on strong earnings."},
		},
		{
			name: "empty input",
			raw:  "",
			max:  5,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseInsights(tt.raw, tt.max))
		})
	}
}

func TestCleanInsight(t *testing.T) {
	require.Equal(t, "Rates held at 5.25%.", CleanInsight("  **Rates**   held at `5.25%`. "))
	require.Equal(t, "", CleanInsight("  **  "))
}
