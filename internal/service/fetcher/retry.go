package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	applog "github.com/koreahan/coupang/pkg/log"
)

const (
	minAllowedRetries = 0
	maxAllowedRetries = 10

	// minAllowedRetryDelay 전체 요청 예산이 수 초 단위이므로 하한을 짧게 둔다.
	minAllowedRetryDelay = 100 * time.Millisecond
	defaultMaxRetryDelay = 5 * time.Second
)

// RetryFetcher 일시적인 실패(429, 408, 5xx, 네트워크 타임아웃)에 대해 지수 백오프로 재시도합니다.
//
// 요청 Context에 기한이 있으면 대기 후 재시도를 시작할 수 없는 경우 즉시 포기하고
// 마지막 오류를 반환합니다. 따라서 재시도가 호출자의 시간 예산을 넘기지 않습니다.
type RetryFetcher struct {
	delegate      Fetcher
	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration

	// now 테스트에서 시계를 고정하기 위해 교체할 수 있다.
	now func() time.Time
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 재시도 횟수는 0~10, 지연 시간은 최소 100ms로 보정됩니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	minRetryDelay, maxRetryDelay = normalizeRetryDelays(minRetryDelay, maxRetryDelay)

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    normalizeMaxRetries(maxRetries),
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
		now:           time.Now,
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	maxRetries := f.maxRetries
	if !isIdempotentMethod(req.Method) && req.GetBody == nil {
		maxRetries = 0
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil && maxRetries > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":    redactURL(req.URL),
			"method": req.Method,
		}).Warn("재시도 비활성화: 요청 본문을 다시 만들 수 없습니다 (GetBody nil)")
		maxRetries = 0
	}

	var lastErr error
	var lastResp *http.Response

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay, retryAfter, ok := f.retryDelay(attempt, lastResp, lastErr)
			if !ok {
				return nil, f.finalError(req, lastResp, lastErr, func(cause error) error {
					return newErrRetryAfterExceeded(cause, retryAfter.String(), f.maxRetryDelay.String())
				})
			}

			if deadline, ok := ctx.Deadline(); ok && !f.now().Add(delay).Before(deadline) {
				finalErr := f.finalError(req, lastResp, lastErr, func(cause error) error { return newErrRetryDeadline(cause, delay.String()) })
				applog.WithComponentAndFields(component, applog.Fields{
					"url":       redactURL(req.URL),
					"retry":     attempt,
					"delay":     delay.String(),
					"remaining": time.Until(deadline).String(),
				}).Debug("재시도 포기: 남은 요청 기한이 재시도 대기 시간보다 짧습니다")
				return nil, finalErr
			}

			f.logRetry(req, attempt, maxRetries, delay, lastResp, lastErr)
			closeResponse(lastResp)
			lastResp = nil

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, newErrGetBodyFailed(err)
				}
				req = req.Clone(ctx)
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)

		if err != nil {
			closeResponse(resp)
			if ctx.Err() != nil || !isRetriable(err) {
				return nil, err
			}
			lastErr, lastResp = err, nil
			continue
		}

		if !shouldRetryStatus(resp.StatusCode) {
			return resp, nil
		}
		lastErr, lastResp = nil, resp
	}

	return nil, f.finalError(req, lastResp, lastErr, newErrMaxRetriesExceeded)
}

// finalError 재시도를 마칠 때 반환할 오류를 만듭니다. 상태 코드 응답이 남아 있으면 HTTPStatusError로 변환합니다.
func (f *RetryFetcher) finalError(req *http.Request, lastResp *http.Response, lastErr error, wrap func(error) error) error {
	if lastResp != nil {
		b, _ := io.ReadAll(io.LimitReader(lastResp.Body, bodySnippetLimit))
		closeResponse(lastResp)
		if lastResp.Request == nil {
			lastResp.Request = req
		}
		return newHTTPStatusError(lastResp, string(b), wrap(newErrHTTPStatus(statusErrorType(lastResp.StatusCode), lastResp.Status, redactURL(req.URL))))
	}
	return wrap(lastErr)
}

// retryDelay 다음 시도까지의 대기 시간을 계산합니다.
// 서버가 Retry-After로 maxRetryDelay보다 긴 대기를 요구하면 그 값과 함께 false를 반환합니다.
func (f *RetryFetcher) retryDelay(attempt int, lastResp *http.Response, lastErr error) (time.Duration, time.Duration, bool) {
	// Full Jitter: [0, min(max, base*2^(n-1))]
	delay := f.minRetryDelay * time.Duration(1<<(attempt-1))
	if delay > f.maxRetryDelay {
		delay = f.maxRetryDelay
	}
	delay = time.Duration(rand.Int64N(int64(delay) + 1))
	if delay < f.minRetryDelay {
		delay = f.minRetryDelay
	}

	var retryAfter string
	if lastResp != nil {
		retryAfter = lastResp.Header.Get("Retry-After")
	} else {
		var statusErr *HTTPStatusError
		if errors.As(lastErr, &statusErr) && statusErr.Header != nil {
			retryAfter = statusErr.Header.Get("Retry-After")
		}
	}

	if d, ok := parseRetryAfter(retryAfter, f.now()); ok {
		if d > f.maxRetryDelay {
			return 0, d, false
		}
		delay = d
	}

	return delay, 0, true
}

func (f *RetryFetcher) logRetry(req *http.Request, attempt, maxRetries int, delay time.Duration, lastResp *http.Response, lastErr error) {
	fields := applog.Fields{
		"url":         redactURL(req.URL),
		"retry":       attempt,
		"max_retries": maxRetries,
		"delay":       delay.String(),
	}
	if lastErr != nil {
		fields["error"] = lastErr.Error()
	}
	if lastResp != nil {
		fields["status_code"] = lastResp.StatusCode
	}

	applog.WithComponentAndFields(component, fields).Warn("재시도 대기 중: 일시적 오류로 요청을 다시 시도합니다")
}

func (f *RetryFetcher) Close() error {
	return f.delegate.Close()
}

func closeResponse(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		drainAndCloseBody(resp.Body)
	}
}

func shouldRetryStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return code >= 500
}

func normalizeMaxRetries(n int) int {
	return min(max(n, minAllowedRetries), maxAllowedRetries)
}

func normalizeRetryDelays(minDelay, maxDelay time.Duration) (time.Duration, time.Duration) {
	if minDelay < minAllowedRetryDelay {
		minDelay = minAllowedRetryDelay
	}
	if maxDelay == 0 {
		maxDelay = defaultMaxRetryDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return minDelay, maxDelay
}

// isRetriable 네트워크 오류나 상태 코드 오류가 재시도로 해결될 수 있는지 판단합니다.
func isRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && strings.Contains(urlErr.Error(), "unsupported protocol scheme") {
		return false
	}

	var hostnameErr x509.HostnameError
	var authorityErr x509.UnknownAuthorityError
	var certErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &authorityErr) || errors.As(err, &certErr) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return shouldRetryStatus(statusErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if apperrors.Is(err, apperrors.InvalidInput) || apperrors.Is(err, apperrors.Forbidden) ||
		apperrors.Is(err, apperrors.NotFound) || apperrors.Is(err, apperrors.ExecutionFailed) {
		return false
	}

	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// parseRetryAfter 초 단위 숫자 또는 HTTP 날짜 형식을 지원합니다.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(date.Sub(now), 0), true
	}

	return 0, false
}

// String 디버깅용 요약 문자열
func (f *RetryFetcher) String() string {
	return fmt.Sprintf("RetryFetcher(max=%d, delay=%s~%s)", f.maxRetries, f.minRetryDelay, f.maxRetryDelay)
}
