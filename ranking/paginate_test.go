package ranking

import (
	"testing"

	"github.com/linkup-social/linkup/apperr"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRejectsNonPositive(t *testing.T) {
	for _, req := range []PageRequest{
		{Page: 0, Limit: 10},
		{Page: -3, Limit: 10},
		{Page: 1, Limit: 0},
		{Page: 1, Limit: -10},
	} {
		_, err := req.Sanitize()
		require.Error(t, err)
		require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	}
}

func TestSanitizeCapsLimit(t *testing.T) {
	sanitized, err := PageRequest{Page: 1, Limit: 5000}.Sanitize()
	require.NoError(t, err)
	require.Equal(t, maxPageLimit, sanitized.Limit)
}

func TestSliceBounds(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       PageRequest
		start, end int
		hasMore    bool
		totalPages int
	}{
		{"first of many", 25, PageRequest{1, 10}, 0, 10, true, 3},
		{"last partial", 25, PageRequest{3, 10}, 20, 25, false, 3},
		{"past the end", 25, PageRequest{9, 10}, 25, 25, false, 3},
		{"empty list", 0, PageRequest{1, 10}, 0, 0, false, 0},
		{"exact fit", 20, PageRequest{2, 10}, 10, 20, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, pg := Slice(tt.total, tt.page)
			require.Equal(t, tt.start, start)
			require.Equal(t, tt.end, end)
			require.Equal(t, tt.hasMore, pg.HasMore)
			require.Equal(t, tt.totalPages, pg.TotalPages)
			require.Equal(t, tt.total, pg.TotalCount)
			require.Equal(t, tt.page.Page, pg.CurrentPage)
		})
	}
}
