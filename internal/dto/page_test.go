package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         PageRequest
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{name: "zero values", in: PageRequest{}, wantPage: 1, wantSize: 20, wantOffset: 0},
		{name: "size too large", in: PageRequest{Page: 3, Size: 500}, wantPage: 3, wantSize: 20, wantOffset: 40},
		{name: "valid", in: PageRequest{Page: 2, Size: 10}, wantPage: 2, wantSize: 10, wantOffset: 10},
		{name: "negative page", in: PageRequest{Page: -1, Size: 5}, wantPage: 1, wantSize: 5, wantOffset: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.Size)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2, 3}, PageRequest{Page: 1, Size: 3}, 7)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(7), p.TotalElements)

	empty := NewPage[int](nil, PageRequest{Page: 1, Size: 20}, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}
