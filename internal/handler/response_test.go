package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	repo "ecom/internal/repository"
	"ecom/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// HTTPErrorはステータスとメッセージがそのまま封筒に出る
func TestWriteError_HTTPError(t *testing.T) {
	c, rec := newEchoContext()

	err := writeError(c, usecase.NewHTTPError(http.StatusNotFound, "Product not found"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Product not found", env.Message)
}

// 未知のエラーは500で内容を漏らさない
func TestWriteError_UnknownError(t *testing.T) {
	c, rec := newEchoContext()

	err := writeError(c, errors.New("pq: connection refused"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "internal error", env.Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestOkPage_Envelope(t *testing.T) {
	c, rec := newEchoContext()

	q := repo.PageQuery{Page: 2, Size: 5}
	err := okPage(c, "fetched", []string{"a", "b"}, q, 12)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 5, env.Pagination.Size)
	assert.Equal(t, int64(12), env.Pagination.Total)
}

// bodyのpage/sizeが無ければ1/10に正規化される
func TestPageRequest_Defaults(t *testing.T) {
	q := PageRequest{}.toQuery()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Size)
	assert.Equal(t, 0, q.Offset())

	q = PageRequest{Page: 3, Size: 20}.toQuery()
	assert.Equal(t, 40, q.Offset())
}
