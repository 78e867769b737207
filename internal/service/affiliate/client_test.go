package affiliate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/fetcher"
	"github.com/koreahan/coupang/internal/service/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 18, 7, 2, 0, time.FixedZone("KST", 9*60*60))
}

func TestSigner_KnownVector(t *testing.T) {
	s := NewSigner("test-access", "test-secret")
	s.now = fixedClock

	got := s.Authorization(http.MethodPost, deeplinkPath, "")
	assert.Equal(t,
		"CEA algorithm=HmacSHA256, access-key=test-access, signed-date=240305T090702Z, signature=46f886078ced00739c9f8776e0fd0aa4efc66fc21b5642f010963f4f7d6bc9e9",
		got)

	got = s.Authorization(http.MethodGet, "/v2/providers/affiliate_open_api/apis/openapi/v1/products/search", "keyword=tumbler&limit=5")
	assert.True(t, strings.HasSuffix(got, "signature=ac91b83acae79c1329b4bb952fe7ee6ffe051d56016e49421aa8376802f20168"))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(scraper.New(fetcher.NewHTTPFetcher(fetcher.WithTimeout(2*time.Second))), Config{
		Endpoint:  srv.URL + "/",
		AccessKey: "test-access",
		SecretKey: "test-secret",
		SubID:     "blog",
	})
	c.signer.now = fixedClock
	return c
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	_, _ = w.Write([]byte(body))
}

func TestCreateDeeplink(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, deeplinkPath, r.URL.Path)
		assert.Contains(t, r.Header.Get("Authorization"), "signed-date=240305T090702Z")
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		var req deeplinkRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"https://www.coupang.com/vp/products/1"}, req.CoupangURLs)
		assert.Equal(t, "blog", req.SubID)

		writeJSON(w, `{"rCode":"0","rMessage":"","data":[{"originalUrl":"https://www.coupang.com/vp/products/1","shortenUrl":"https://link.coupang.com/a/abc","landingUrl":"https://link.coupang.com/re/AFFSDP?lptag=AF1"}]}`)
	})

	links, err := c.CreateDeeplink(context.Background(), "https://www.coupang.com/vp/products/1")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://link.coupang.com/a/abc", links[0].ShortenURL)
	assert.Equal(t, "https://www.coupang.com/vp/products/1", links[0].OriginalURL)
}

func TestCreateDeeplink_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType apperrors.ErrorType
		wantMsg  string
	}{
		{"rCode 오류", http.StatusOK, `{"rCode":"400","rMessage":"Invalid url"}`, apperrors.ExecutionFailed, "Invalid url"},
		{"숫자 rCode", http.StatusOK, `{"rCode":401,"rMessage":"Unauthorized"}`, apperrors.ExecutionFailed, "rCode=401"},
		{"빈 결과", http.StatusOK, `{"rCode":"0","rMessage":"","data":[]}`, apperrors.NotFound, "딥링크가 없습니다"},
		{"서명 거부", http.StatusUnauthorized, `{"code":"ERROR","message":"Invalid signature"}`, apperrors.Forbidden, "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.CreateDeeplink(context.Background(), "https://www.coupang.com/vp/products/1")
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, tt.wantType), "err=%v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateDeeplink_NotConfigured(t *testing.T) {
	c := New(scraper.New(fetcher.NewHTTPFetcher()), Config{AccessKey: "a", SecretKey: "s"})

	assert.False(t, c.Configured())
	_, err := c.CreateDeeplink(context.Background(), "https://www.coupang.com/vp/products/1")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, DefaultEndpoint, c.endpoint)
}

func TestCreateDeeplink_NoURLs(t *testing.T) {
	c := New(scraper.New(fetcher.NewHTTPFetcher()), Config{AccessKey: "a", SecretKey: "s", SubID: "x"})

	_, err := c.CreateDeeplink(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
