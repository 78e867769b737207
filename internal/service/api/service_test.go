package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/koreahan/coupang/internal/config"
	"github.com/koreahan/coupang/internal/pkg/version"
	"github.com/koreahan/coupang/internal/service/affiliate"
	"github.com/koreahan/coupang/internal/service/extractor"
	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/extractor/urlnorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const productURL = "https://www.coupang.com/vp/products/7335597976"

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, rawURL string) (*extractor.Result, error) {
	if strings.Contains(rawURL, "blocked") {
		return &extractor.Result{FinalURL: productURL}, failure.New(failure.AllStrategiesExhausted, "모든 추출 전략이 실패했습니다", "direct: BlockedOrEmptyPage (차단 페이지)")
	}
	if !strings.Contains(rawURL, "coupang") {
		return nil, failure.New(failure.MalformedURL, "쿠팡 URL이 아닙니다")
	}

	title := "사과 1.5kg"
	price := int64(19900)
	return &extractor.Result{
		FinalURL:   productURL,
		Title:      &title,
		Price:      &price,
		Currency:   "KRW",
		Provider:   "json-ld",
		Strategy:   "static-desktop",
		Candidates: []int64{19900, 25000},
	}, nil
}

type stubNormalizer struct{}

func (stubNormalizer) Normalize(_ context.Context, raw string) (*urlnorm.NormalizedURL, error) {
	return &urlnorm.NormalizedURL{URL: raw, Canonical: true}, nil
}

type stubDeeplinks struct{}

func (stubDeeplinks) Configured() bool { return false }

func (stubDeeplinks) CreateDeeplink(context.Context, ...string) ([]affiliate.Deeplink, error) {
	return nil, affiliate.ErrNotConfigured
}

type configured bool

func (c configured) Configured() bool { return bool(c) }

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

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func newTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.LoadWithFile("")
	require.NoError(t, err)
	cfg.HTTPServer.RateLimit.PerSecond = 1000
	cfg.HTTPServer.RateLimit.Burst = 1000
	return cfg
}

func newTestService(t *testing.T, notifier *recordingNotifier) (*Service, string) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	deps := Dependencies{
		Extractor:  stubExtractor{},
		Normalizer: stubNormalizer{},
		Deeplinks:  stubDeeplinks{},
		Scraping:   configured(true),
	}
	if notifier != nil {
		deps.Notifier = notifier
	}

	s := NewService(newTestConfig(t), deps, version.Info{Version: "v1.0.0", Commit: "abc1234"})
	s.listener = l

	return s, "http://" + l.Addr().String()
}

// startService 서비스를 시작하고, 테스트 종료 시 Context를 취소한 뒤 고루틴이 끝날 때까지 기다린다.
func startService(t *testing.T, s *Service) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
}

func newClient() *http.Client {
	return &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := newClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body=%s", raw)
	}
	return resp, decoded
}

func TestNewService_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "AppConfig는 필수입니다", func() {
		NewService(nil, Dependencies{}, version.Info{})
	})
}

func TestService_Endpoints(t *testing.T) {
	s, baseURL := newTestService(t, nil)
	startService(t, s)

	t.Run("상품 정보 추출 성공", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, baseURL+"/api/v1/product-info", `{"url":"`+productURL+`","debug":true}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "사과 1.5kg", body["title"])
		assert.Equal(t, float64(19900), body["price"])
		assert.Equal(t, map[string]any{"prices": []any{float64(19900), float64(25000)}}, body["debug"])
	})

	t.Run("Content-Type 없이 전송된 본문", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/product-info", strings.NewReader(`{"url":"`+productURL+`"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "text/plain")

		resp, err := newClient().Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("추출 실패는 200과 success=false", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, baseURL+"/api/v1/product-info", `{"url":"https://www.coupang.com/blocked"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "AllStrategiesExhausted", body["error"])
		assert.Equal(t, productURL, body["finalUrl"])
	})

	t.Run("잘못된 URL은 400", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, baseURL+"/api/v1/product-info", `{"url":"https://example.com/x"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "MalformedUrl", body["error"])
	})

	t.Run("URL 누락은 400", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, baseURL+"/api/v1/product-info", `{}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "No URL provided", body["reason"])
	})

	t.Run("GET은 405", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, baseURL+"/api/v1/product-info", "")

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "POST only", body["error"])
	})

	t.Run("OPTIONS는 본문 없는 200", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, baseURL+"/api/v1/product-info", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://shop.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := newClient().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, raw)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("제휴 키 미설정 딥링크", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, baseURL+"/api/v1/deeplink", `{"url":"`+productURL+`"}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "NotConfigured", body["error"])
	})

	t.Run("헬스체크", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, baseURL+"/health", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "degraded", body["status"], "제휴 키가 없으면 degraded")
		assert.Contains(t, body["dependencies"], "scraping_provider")
		assert.NotContains(t, body, "usage")
	})

	t.Run("버전", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, baseURL+"/version", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "v1.0.0", body["version"])
	})

	t.Run("ping", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, baseURL+"/api/v1/ping", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["hasEnv"])
	})

	t.Run("없는 경로", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, baseURL+"/nope", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "요청한 리소스를 찾을 수 없습니다", body["error"])
	})
}

func TestService_DuplicateStart(t *testing.T) {
	s, _ := newTestService(t, nil)
	startService(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("중복 Start 호출 시 즉시 Done이 호출되어야 합니다")
	}
}

func TestService_GracefulShutdown(t *testing.T) {
	s, baseURL := newTestService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	resp, _ := doRequest(t, http.MethodGet, baseURL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	wg.Wait()

	s.runningMu.Lock()
	assert.False(t, s.running)
	s.runningMu.Unlock()

	_, err := newClient().Get(baseURL + "/health")
	assert.Error(t, err, "종료 후에는 연결할 수 없어야 합니다")
}

func TestService_UnexpectedServerExit(t *testing.T) {
	notifier := &recordingNotifier{}
	s, _ := newTestService(t, notifier)

	// 닫힌 리스너로는 서버를 시작할 수 없다.
	require.NoError(t, s.listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	wg.Wait()

	assert.Equal(t, 1, notifier.count(), "서버가 비정상 종료되면 운영자에게 알려야 합니다")

	s.runningMu.Lock()
	assert.False(t, s.running)
	s.runningMu.Unlock()
}
