package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, query string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=10", 3, 10},
		{"zero page clamped", "page=0", 1, 20},
		{"negative page clamped", "page=-2", 1, 20},
		{"oversized limit clamped", "limit=500", 1, 20},
		{"max limit kept", "limit=50", 1, 50},
		{"garbage ignored", "page=abc&limit=xyz", 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := pageParams(newTestContext(t, tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPaginationMeta(t *testing.T) {
	meta := paginationMeta(2, 20, 45)

	assert.Equal(t, 2, meta["currentPage"])
	assert.Equal(t, 3, meta["totalPages"])
	assert.Equal(t, int64(45), meta["totalItems"])
	assert.Equal(t, true, meta["hasNextPage"])
	assert.Equal(t, true, meta["hasPreviousPage"])
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("1,2, 3")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, ids)

	_, err = parseIDList("")
	assert.Error(t, err)

	_, err = parseIDList("1,abc")
	assert.Error(t, err)
}

func TestParseTargetType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("target_type")
	c.SetParamValues("post")

	targetType, err := parseTargetType(c)
	require.NoError(t, err)
	assert.Equal(t, "post", string(targetType))

	c.SetParamValues("story")
	_, err = parseTargetType(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
