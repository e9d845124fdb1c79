package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name               string
		total, page, limit int
		want               Pagination
	}{
		{"empty", 0, 1, 12, Pagination{Total: 0, Page: 1, Limit: 12, TotalPages: 0, HasNext: false, HasPrev: false}},
		{"single page", 5, 1, 12, Pagination{Total: 5, Page: 1, Limit: 12, TotalPages: 1, HasNext: false, HasPrev: false}},
		{"middle page", 3, 2, 1, Pagination{Total: 3, Page: 2, Limit: 1, TotalPages: 3, HasNext: true, HasPrev: true}},
		{"last page", 3, 3, 1, Pagination{Total: 3, Page: 3, Limit: 1, TotalPages: 3, HasNext: false, HasPrev: true}},
		{"partial last page", 25, 3, 12, Pagination{Total: 25, Page: 3, Limit: 12, TotalPages: 3, HasNext: false, HasPrev: true}},
		{"past the end", 3, 9, 1, Pagination{Total: 3, Page: 9, Limit: 1, TotalPages: 3, HasNext: false, HasPrev: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPagination(tc.total, tc.page, tc.limit))
		})
	}
}
