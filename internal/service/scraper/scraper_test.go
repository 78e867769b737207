package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func newTestScraper(opts ...Option) Scraper {
	return New(fetcher.NewHTTPFetcher(fetcher.WithTimeout(2*time.Second)), opts...)
}

func eucKR(t *testing.T, s string) []byte {
	t.Helper()
	b, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestNew_PanicsWithoutFetcher(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}

func TestFetchPage(t *testing.T) {
	t.Parallel()

	const html = `<html><head><title>쿠팡 상품</title></head><body>12,900원</body></html>`

	tests := []struct {
		name        string
		contentType string
		body        func(t *testing.T) []byte
	}{
		{
			name:        "UTF-8",
			contentType: "text/html; charset=utf-8",
			body:        func(*testing.T) []byte { return []byte(html) },
		},
		{
			name:        "헤더의 EUC-KR",
			contentType: "text/html; charset=euc-kr",
			body:        func(t *testing.T) []byte { return eucKR(t, html) },
		},
		{
			name:        "meta charset 감지",
			contentType: "text/html",
			body: func(t *testing.T) []byte {
				return eucKR(t, `<html><head><meta charset="euc-kr"><title>쿠팡 상품</title></head><body>12,900원</body></html>`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body := tt.body(t)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept"), "text/html")
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write(body)
			}))
			defer server.Close()

			page, err := newTestScraper().FetchPage(context.Background(), http.MethodGet, server.URL, nil)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, page.StatusCode)
			assert.Contains(t, page.Body, "<title>쿠팡 상품</title>")
			assert.Contains(t, page.Body, "12,900원")
			assert.Equal(t, len(body), page.RawSize)
		})
	}
}

func TestFetchPage_FinalURLAfterRedirect(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/vp/products/123", http.StatusFound)
	})
	mux.HandleFunc("/vp/products/123", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html></html>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	page, err := newTestScraper().FetchPage(context.Background(), http.MethodGet, server.URL+"/short", nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/vp/products/123", page.URL)
}

func TestFetchPage_Errors(t *testing.T) {
	t.Parallel()

	t.Run("응답 크기 초과", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, strings.Repeat("a", 200))
		}))
		defer server.Close()

		_, err := newTestScraper(WithMaxResponseBodySize(100)).FetchPage(context.Background(), http.MethodGet, server.URL, nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("허용되지 않은 상태 코드", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, "maintenance")
		}))
		defer server.Close()

		_, err := newTestScraper().FetchPage(context.Background(), http.MethodGet, server.URL+"?api_key=secret", nil)
		require.Error(t, err)

		var statusErr *fetcher.HTTPStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Contains(t, statusErr.BodySnippet, "maintenance")
		assert.NotContains(t, err.Error(), "secret")
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	})

	t.Run("허용 상태 코드 확장", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, "Access Denied")
		}))
		defer server.Close()

		page, err := newTestScraper(WithAllowedStatusCodes(http.StatusOK, http.StatusForbidden)).
			FetchPage(context.Background(), http.MethodGet, server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, page.StatusCode)
		assert.Equal(t, "Access Denied", page.Body)
	})

	t.Run("컨텍스트 취소", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := newTestScraper().FetchPage(ctx, http.MethodGet, server.URL, nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Timeout))
	})

	t.Run("잘못된 URL", func(t *testing.T) {
		_, err := newTestScraper().FetchPage(context.Background(), http.MethodGet, "://bad", nil)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	})
}

func TestContextAwareReader(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	r := &contextAwareReader{ctx: ctx, r: strings.NewReader("hello")}

	buf := make([]byte, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cancel()
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreviewBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", previewBody(nil))
	assert.Equal(t, "hello", previewBody([]byte("hello")))
	assert.Equal(t, "[바이너리 데이터]", previewBody([]byte{0x00, 0x01, 0x02}))
	assert.True(t, strings.HasSuffix(previewBody([]byte(strings.Repeat("a", 600))), "...(생략됨)"))
}
