package fetcher

import (
	"time"

	"golang.org/x/sync/semaphore"
)

// Config Fetcher 체인 구성 설정입니다.
type Config struct {
	// Timeout 요청 하나(재시도 1회분)의 전체 타임아웃. 0이면 기본값(30초)을 사용합니다.
	// 호출자가 Context 기한을 지정하면 둘 중 짧은 쪽이 적용됩니다.
	Timeout time.Duration

	ProxyURL string

	// MaxRedirects nil이면 기본값(10회), 0이면 리다이렉트를 따라가지 않습니다.
	MaxRedirects *int

	// UserAgents 비어 있으면 내장 목록을 사용합니다.
	UserAgents []string

	MaxRetries    int
	MinRetryDelay time.Duration
	MaxRetryDelay time.Duration

	// DisableStatusCodeValidation true이면 모든 상태 코드를 그대로 반환합니다. (단축 링크 해석 등)
	DisableStatusCodeValidation bool
	AllowedStatusCodes          []int

	// MaxBytes 0 이하이면 10MB, NoLimit이면 제한 없음
	MaxBytes int64

	// Limiter 상위 서비스 동시 요청 제한. nil이면 제한하지 않습니다.
	Limiter *semaphore.Weighted

	DisableLogging bool
}

// NewFromConfig 설정에 따라 Fetcher 체인을 조립합니다. 바깥쪽부터 순서는 다음과 같습니다.
//
//  1. LoggingFetcher: 재시도를 포함한 요청 전체를 기록
//  2. UserAgentFetcher: User-Agent가 없는 요청에 주입
//  3. LimitFetcher: 상위 동시 요청 수 제한
//  4. RetryFetcher: 429/5xx 재시도 (Context 기한 인지)
//  5. StatusCodeFetcher: 시도마다 상태 코드 검증
//  6. MaxBytesFetcher: 응답 본문 크기 제한
//  7. HTTPFetcher: 실제 전송
func NewFromConfig(cfg Config, opts ...Option) Fetcher {
	var httpOpts []Option
	if cfg.Timeout > 0 {
		httpOpts = append(httpOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.ProxyURL != "" {
		httpOpts = append(httpOpts, WithProxy(cfg.ProxyURL))
	}
	if cfg.MaxRedirects != nil {
		httpOpts = append(httpOpts, WithMaxRedirects(*cfg.MaxRedirects))
	}
	httpOpts = append(httpOpts, opts...)

	var f Fetcher = NewHTTPFetcher(httpOpts...)
	f = NewMaxBytesFetcher(f, cfg.MaxBytes)
	if !cfg.DisableStatusCodeValidation {
		f = NewStatusCodeFetcher(f, cfg.AllowedStatusCodes...)
	}
	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.MinRetryDelay, cfg.MaxRetryDelay)
	f = NewLimitFetcher(f, cfg.Limiter)
	f = NewUserAgentFetcher(f, cfg.UserAgents)
	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
