package fetcher

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	defaultTimeout             = 30 * time.Second
	defaultTLSHandshakeTimeout = 10 * time.Second
	defaultIdleConnTimeout     = 90 * time.Second
	defaultMaxIdleConns        = 100
	defaultMaxRedirects        = 10
)

// HTTPFetcher net/http 클라이언트로 실제 요청을 전송하는 체인의 가장 안쪽 구현체입니다.
type HTTPFetcher struct {
	client *http.Client

	proxyURL            string
	tlsHandshakeTimeout time.Duration
	maxRedirects        int
	transport           http.RoundTripper

	initErr error
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher 설정을 변경합니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체(연결부터 본문 수신까지)에 대한 타임아웃을 설정합니다. 0이면 제한이 없습니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithTLSHandshakeTimeout TLS 핸드셰이크 타임아웃을 설정합니다.
func WithTLSHandshakeTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.tlsHandshakeTimeout = timeout
	}
}

// WithProxy 프록시 서버 주소를 설정합니다. 빈 문자열이면 HTTP_PROXY 등 환경 변수를 따릅니다.
func WithProxy(proxyURL string) Option {
	return func(h *HTTPFetcher) {
		h.proxyURL = proxyURL
	}
}

// WithMaxRedirects 최대 리다이렉트 횟수를 설정합니다.
// 0이면 리다이렉트를 따라가지 않고 3xx 응답을 그대로 반환합니다.
func WithMaxRedirects(n int) Option {
	return func(h *HTTPFetcher) {
		if n < 0 {
			n = defaultMaxRedirects
		}
		h.maxRedirects = n
	}
}

// WithTransport Transport를 직접 지정합니다. 주로 테스트에서 사용합니다.
func WithTransport(rt http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.transport = rt
	}
}

// WithCookieJar 쿠키 저장소를 지정합니다.
func WithCookieJar(jar http.CookieJar) Option {
	return func(h *HTTPFetcher) {
		h.client.Jar = jar
	}
}

// NewHTTPFetcher 새 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client:              &http.Client{Timeout: defaultTimeout},
		tlsHandshakeTimeout: defaultTLSHandshakeTimeout,
		maxRedirects:        defaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.client.CheckRedirect = h.checkRedirect

	if h.transport != nil {
		h.client.Transport = h.transport
	} else {
		tr, err := sharedTransport(transportKey{
			proxyURL:            h.proxyURL,
			tlsHandshakeTimeout: h.tlsHandshakeTimeout,
		})
		if err != nil {
			h.initErr = err
		} else {
			h.client.Transport = tr
		}
	}

	return h
}

func (h *HTTPFetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if h.maxRedirects == 0 {
		return http.ErrUseLastResponse
	}
	if len(via) >= h.maxRedirects {
		return errors.New("stopped after too many redirects")
	}
	return nil
}

func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if h.initErr != nil {
		return nil, h.initErr
	}

	resp, err := h.client.Do(req)
	if err != nil {
		// *url.Error의 메시지에는 요청 URL 전체가 들어가므로 api_key 등을 가린다.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = RedactURL(urlErr.URL)
		}
	}
	return resp, err
}

// Close 공유 Transport는 닫지 않고, 직접 주입된 Transport의 유휴 연결만 정리합니다.
func (h *HTTPFetcher) Close() error {
	if t, ok := h.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// transportKey 동일한 설정의 HTTPFetcher들이 연결 풀을 공유하기 위한 캐시 키입니다.
type transportKey struct {
	proxyURL            string
	tlsHandshakeTimeout time.Duration
}

var (
	transportCache   = make(map[transportKey]*http.Transport)
	transportCacheMu sync.Mutex
)

func sharedTransport(key transportKey) (*http.Transport, error) {
	transportCacheMu.Lock()
	defer transportCacheMu.Unlock()

	if tr, ok := transportCache[key]; ok {
		return tr, nil
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: key.tlsHandshakeTimeout,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConns,
		IdleConnTimeout:     defaultIdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	if key.proxyURL != "" {
		u, err := url.Parse(key.proxyURL)
		if err != nil || u.Host == "" {
			return nil, newErrInvalidProxyURL(RedactURL(key.proxyURL))
		}
		tr.Proxy = http.ProxyURL(u)
	}

	transportCache[key] = tr
	return tr, nil
}
