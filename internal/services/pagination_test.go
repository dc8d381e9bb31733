package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, DefaultPageSize},
		{-3, 10, 1, 10},
		{2, 500, 2, MaxPageSize},
		{4, 5, 4, 5},
	}
	for _, tt := range tests {
		p := NewPage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p.Page)
		assert.Equal(t, tt.wantLimit, p.Limit)
	}
}

func TestPageHasMore(t *testing.T) {
	p := NewPage(2, 10)
	assert.Equal(t, 10, p.Offset())
	assert.True(t, p.HasMore(10, 21))
	assert.False(t, p.HasMore(10, 20))
	assert.False(t, p.HasMore(3, 13))
}

func TestNewPageClampsHugePage(t *testing.T) {
	p := NewPage(math.MaxInt64/20+2, 20)
	assert.Equal(t, math.MaxInt32, p.Page)
	assert.Positive(t, p.Offset())
	assert.False(t, p.HasMore(0, 10))
}
