package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			max:      10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			max:      5,
			expected: "hello",
		},
		{
			name:     "long ascii trimmed with ellipsis",
			input:    "abcdefghij",
			max:      8,
			expected: "abcde...",
		},
		{
			name:     "multi-byte runes counted as one character",
			input:    "héllo wörld",
			max:      11,
			expected: "héllo wörld",
		},
		{
			name:     "cut lands between runes, not bytes",
			input:    "éééééééééé",
			max:      8,
			expected: "ééééé...",
		},
		{
			name:     "cjk text trimmed cleanly",
			input:    "商品の説明テキストです",
			max:      8,
			expected: "商品の説明...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got), "truncated output must stay valid UTF-8")
		})
	}
}

func TestRenderStoreRequestsTruncatesMessage(t *testing.T) {
	var buf bytes.Buffer
	renderStoreRequests(&buf, []entity.StoreRequest{
		{
			ID:             "req-1",
			RequestMessage: strings.Repeat("許可をお願いします", 12),
			RequestStatus:  entity.RequestPending,
			CreatedAt:      time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
			Store:          &entity.Store{StoreName: "Ayşe's Atölye"},
		},
	})

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Ayşe's Atölye")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, "�")
}
