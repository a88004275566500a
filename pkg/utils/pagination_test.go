package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		current int
		want    []string
	}{
		{
			name:    "few pages show everything",
			total:   5,
			current: 3,
			want:    []string{"1", "2", "3", "4", "5"},
		},
		{
			name:    "exactly seven pages show everything",
			total:   7,
			current: 7,
			want:    []string{"1", "2", "3", "4", "5", "6", "7"},
		},
		{
			name:    "near the start",
			total:   10,
			current: 1,
			want:    []string{"1", "2", "3", "4", "5", "...", "10"},
		},
		{
			name:    "last page of the start window",
			total:   10,
			current: 4,
			want:    []string{"1", "2", "3", "4", "5", "...", "10"},
		},
		{
			name:    "near the end",
			total:   10,
			current: 10,
			want:    []string{"1", "...", "6", "7", "8", "9", "10"},
		},
		{
			name:    "first page of the end window",
			total:   10,
			current: 7,
			want:    []string{"1", "...", "6", "7", "8", "9", "10"},
		},
		{
			name:    "in the middle",
			total:   10,
			current: 5,
			want:    []string{"1", "...", "4", "5", "6", "...", "10"},
		},
		{
			name:    "middle of a large range",
			total:   100,
			current: 50,
			want:    []string{"1", "...", "49", "50", "51", "...", "100"},
		},
		{
			name:    "single page",
			total:   1,
			current: 1,
			want:    []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.total, tt.current))
		})
	}
}

func TestClampPage(t *testing.T) {
	assert.True(t, ClampPage(1, 10))
	assert.True(t, ClampPage(10, 10))
	assert.False(t, ClampPage(0, 10))
	assert.False(t, ClampPage(11, 10))
	assert.False(t, ClampPage(1, 0))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 9, TotalPages(100, 12))
	assert.Equal(t, 1, TotalPages(100, 0))
}
