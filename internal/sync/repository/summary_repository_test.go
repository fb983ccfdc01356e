package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncationSummaryShortContent(t *testing.T) {
	repo := NewTruncationSummaryRepository()

	result, err := repo.GenerateSummary(context.Background(), "Earnings beat", "Profit rose sharply.")
	require.NoError(t, err)

	assert.Equal(t, "Earnings beat Profit rose sharply....", result.Text)
	assert.Equal(t, 0.85, result.Confidence)
	assert.Equal(t, "truncation", result.Model)
}

func TestTruncationSummaryCapsAtFiftyWords(t *testing.T) {
	repo := NewTruncationSummaryRepository()
	content := strings.Repeat("word ", 200)

	result, err := repo.GenerateSummary(context.Background(), "Title", content)
	require.NoError(t, err)

	assert.Len(t, strings.Fields(strings.TrimSuffix(result.Text, "...")), 50)
	assert.True(t, strings.HasSuffix(result.Text, "..."))
}

func TestParseGeminiSummary(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "plain json",
			text: `{"summary": "Profits rose.", "confidence": 0.9}`,
			want: "Profits rose.",
		},
		{
			name: "json code fence",
			text: "```json\n{\"summary\": \"Profits rose.\", \"confidence\": 0.9}\n```",
			want: "Profits rose.",
		},
		{
			name: "bare code fence",
			text: "```\n{\"summary\": \"Profits rose.\", \"confidence\": 0.9}\n```",
			want: "Profits rose.",
		},
		{
			name:    "not json",
			text:    "The article says profits rose.",
			wantErr: true,
		},
		{
			name:    "missing summary",
			text:    `{"confidence": 0.9}`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := parseGeminiSummary(tc.text)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, payload.Summary)
			assert.Equal(t, 0.9, payload.Confidence)
		})
	}
}
