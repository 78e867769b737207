package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/koreahan/coupang/internal/service/fetcher"
	"github.com/koreahan/coupang/internal/service/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productHTML = `<html><head><title>스탠리 텀블러 - 쿠팡!</title></head><body>12,900원</body></html>`

func newTestScraper() scraper.Scraper {
	return scraper.New(fetcher.NewHTTPFetcher(fetcher.WithTimeout(2 * time.Second)))
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return true
}

func TestDeviceHeader(t *testing.T) {
	desktop := DeviceHeader(DeviceDesktop)
	assert.Contains(t, desktop.Get("User-Agent"), "Windows NT 10.0")
	assert.Contains(t, desktop.Get("User-Agent"), "Chrome/123")
	assert.Equal(t, "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7", desktop.Get("Accept-Language"))

	mobile := DeviceHeader(DeviceMobile)
	assert.Contains(t, mobile.Get("User-Agent"), "SM-S908N")
	assert.Contains(t, mobile.Get("User-Agent"), "Mobile Safari")

	assert.Equal(t, desktop.Get("User-Agent"), DeviceHeader("tablet").Get("User-Agent"))
}

func TestScrapingBee_Fetch(t *testing.T) {
	tests := []struct {
		name           string
		req            Request
		premiumDefault bool
		wantParams     map[string]string
		absentParams   []string
		wantUserAgent  string
	}{
		{
			name: "정적 데스크톱",
			req:  Request{TargetURL: "https://www.coupang.com/vp/products/1", Device: DeviceDesktop, Proxy: ProxyStandard},
			wantParams: map[string]string{
				"api_key":         "test-key",
				"url":             "https://www.coupang.com/vp/products/1",
				"render_js":       "false",
				"country_code":    "kr",
				"forward_headers": "true",
			},
			absentParams:  []string{"premium_proxy", "wait", "wait_for"},
			wantUserAgent: "Windows NT 10.0",
		},
		{
			name: "렌더링 모바일 프리미엄",
			req:  Request{TargetURL: "https://www.coupang.com/vp/products/2", Render: true, Device: DeviceMobile, Proxy: ProxyPremium},
			wantParams: map[string]string{
				"render_js":     "true",
				"premium_proxy": "true",
				"wait":          "2000",
				"wait_for":      `meta[property="og:title"], script[type="application/ld+json"]`,
			},
			wantUserAgent: "SM-S908N",
		},
		{
			name:           "기본 프리미엄 설정",
			req:            Request{TargetURL: "https://www.coupang.com/vp/products/3", Device: DeviceDesktop, Proxy: ProxyStandard},
			premiumDefault: true,
			wantParams:     map[string]string{"premium_proxy": "true"},
			wantUserAgent:  "Windows NT 10.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *http.Request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte(productHTML))
			}))
			defer srv.Close()

			sb := NewScrapingBee(newTestScraper(), "test-key", WithEndpoint(srv.URL+"/api/v1"), WithPremiumDefault(tt.premiumDefault))
			resp, err := sb.Fetch(context.Background(), tt.req)
			require.NoError(t, err)

			assert.Equal(t, productHTML, resp.HTML)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.req.TargetURL, resp.FinalURL)

			require.NotNil(t, got)
			assert.Equal(t, "/api/v1", got.URL.Path)
			q := got.URL.Query()
			for k, v := range tt.wantParams {
				assert.Equal(t, v, q.Get(k), "param=%s", k)
			}
			for _, k := range tt.absentParams {
				assert.False(t, q.Has(k), "param=%s", k)
			}
			assert.Contains(t, got.Header.Get("User-Agent"), tt.wantUserAgent)
			assert.NotEmpty(t, got.Header.Get("Accept-Language"))
		})
	}
}

func TestScrapingBee_MissingAPIKey(t *testing.T) {
	sb := NewScrapingBee(newTestScraper(), "")

	assert.False(t, sb.Configured())
	_, err := sb.Fetch(context.Background(), Request{TargetURL: "https://www.coupang.com/vp/products/1"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = sb.Usage(context.Background())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestScrapingBee_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantAlerts int
	}{
		{"요청 한도 초과", http.StatusTooManyRequests, 0},
		{"API 키 거부", http.StatusUnauthorized, 1},
		{"접근 거부", http.StatusForbidden, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			n := &recordingNotifier{}
			sb := NewScrapingBee(newTestScraper(), "secret-key", WithEndpoint(srv.URL), WithNotifier(n))

			_, err := sb.Fetch(context.Background(), Request{TargetURL: "https://www.coupang.com/vp/products/1"})
			require.Error(t, err)

			var statusErr *fetcher.HTTPStatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.NotContains(t, err.Error(), "secret-key", "API 키가 오류 메시지에 노출되면 안 됩니다")
			assert.Len(t, n.messages, tt.wantAlerts)
		})
	}
}

func TestScrapingBee_Usage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/usage", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"max_api_credit":250000,"used_api_credit":1000,"max_concurrency":10,"current_concurrency":2}`))
	}))
	defer srv.Close()

	sb := NewScrapingBee(newTestScraper(), "test-key", WithEndpoint(srv.URL+"/api/v1/"))
	usage, err := sb.Usage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 250000, usage.MaxAPICredit)
	assert.Equal(t, 249000, usage.Remaining())
	assert.Equal(t, 2, usage.CurrentConcurrency)
}

func TestDirect_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/vp/products/1", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/vp/products/1/final", http.StatusFound)
	})
	mux.HandleFunc("/vp/products/1/final", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "SM-S908N")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(productHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	d := NewDirect(newTestScraper())
	assert.Equal(t, NameDirect, d.Name())

	resp, err := d.Fetch(context.Background(), Request{TargetURL: srv.URL + "/vp/products/1", Device: DeviceMobile})
	require.NoError(t, err)
	assert.Equal(t, productHTML, resp.HTML)
	assert.Equal(t, srv.URL+"/vp/products/1/final", resp.FinalURL)

	_, err = d.Fetch(context.Background(), Request{TargetURL: srv.URL, Render: true})
	assert.ErrorIs(t, err, ErrRenderNotSupported)
}

func TestRegistry(t *testing.T) {
	sc := newTestScraper()
	r := NewRegistry(NewScrapingBee(sc, "k"), NewDirect(sc), nil)

	p, err := r.Lookup(NameDirect)
	require.NoError(t, err)
	assert.Equal(t, NameDirect, p.Name())

	_, err = r.Lookup("playwright")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playwright")
}
