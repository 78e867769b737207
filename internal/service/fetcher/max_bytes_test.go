package fetcher

import (
	"io"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxBytesFetcher(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("a", 100)

	t.Run("Content-Length 사전 검사", func(t *testing.T) {
		stub := &stubFetcher{handle: func(_ int, req *http.Request) (*http.Response, error) {
			return newResponse(req, http.StatusOK, body), nil
		}}
		req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)

		_, err := NewMaxBytesFetcher(stub, 10).Do(req)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
		assert.Contains(t, err.Error(), "Content-Length")
	})

	t.Run("읽기 도중 초과", func(t *testing.T) {
		stub := &stubFetcher{handle: func(_ int, req *http.Request) (*http.Response, error) {
			resp := newResponse(req, http.StatusOK, body)
			resp.ContentLength = -1
			return resp, nil
		}}
		req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)

		resp, err := NewMaxBytesFetcher(stub, 10).Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		_, err = io.ReadAll(resp.Body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "제한(10 바이트)")
	})

	t.Run("제한 이내", func(t *testing.T) {
		stub := &stubFetcher{handle: func(_ int, req *http.Request) (*http.Response, error) {
			return newResponse(req, http.StatusOK, body), nil
		}}
		req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)

		resp, err := NewMaxBytesFetcher(stub, 0).Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Len(t, b, 100)
	})

	t.Run("NoLimit", func(t *testing.T) {
		stub := &stubFetcher{}
		assert.Same(t, Fetcher(stub), NewMaxBytesFetcher(stub, NoLimit))
	})
}
