package common_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluecup/backend-pos/internal/common"
)

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/customers", nil)
	page, perPage := common.ParsePagination(req, 50)
	require.Equal(t, 1, page)
	require.Equal(t, 50, perPage)

	req = httptest.NewRequest("GET", "/api/v1/customers?page=3&limit=10", nil)
	page, perPage = common.ParsePagination(req, 50)
	require.Equal(t, 3, page)
	require.Equal(t, 10, perPage)

	// Nonsense values fall back, oversized limits are clamped.
	req = httptest.NewRequest("GET", "/api/v1/customers?page=-1&limit=9999", nil)
	page, perPage = common.ParsePagination(req, 50)
	require.Equal(t, 1, page)
	require.Equal(t, 200, perPage)
}
