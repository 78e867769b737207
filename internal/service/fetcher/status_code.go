package fetcher

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"slices"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
)

// bodySnippetLimit 오류 메시지에 포함할 응답 본문의 최대 길이입니다.
const bodySnippetLimit = 4096

// HTTPStatusError 허용되지 않은 상태 코드로 응답을 받았을 때의 에러입니다.
//
// Cause에는 상태 코드에 대응하는 apperrors 타입이 담기므로 apperrors.Is로 분류할 수 있습니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string
	Cause       error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// StatusCodeFetcher 응답 상태 코드를 검증하여 허용되지 않은 응답을 HTTPStatusError로 변환합니다.
type StatusCodeFetcher struct {
	delegate           Fetcher
	allowedStatusCodes []int
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 허용 상태 코드를 지정하지 않으면 200 OK만 허용합니다.
func NewStatusCodeFetcher(delegate Fetcher, allowedStatusCodes ...int) *StatusCodeFetcher {
	return &StatusCodeFetcher{
		delegate:           delegate,
		allowedStatusCodes: allowedStatusCodes,
	}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if statusErr := checkResponseStatus(resp, false, f.allowedStatusCodes...); statusErr != nil {
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}

func (f *StatusCodeFetcher) Close() error {
	return f.delegate.Close()
}

// CheckResponseStatus 응답 상태 코드를 검사합니다. 허용되지 않으면 HTTPStatusError를 반환하며,
// 오류 메시지를 위해 읽은 본문 앞부분은 다시 읽을 수 있도록 복원합니다.
func CheckResponseStatus(resp *http.Response, allowedStatusCodes ...int) error {
	return checkResponseStatus(resp, true, allowedStatusCodes...)
}

func checkResponseStatus(resp *http.Response, reconstruct bool, allowedStatusCodes ...int) error {
	if len(allowedStatusCodes) == 0 {
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	} else if slices.Contains(allowedStatusCodes, resp.StatusCode) {
		return nil
	}

	var snippet []byte
	if resp.Body != nil {
		b, err := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
		if err == nil && len(b) > 0 {
			snippet = b
			if reconstruct {
				resp.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(b), resp.Body), resp.Body}
			}
		}
	}

	return newHTTPStatusError(resp, string(snippet), nil)
}

// newHTTPStatusError cause가 nil이면 상태 코드에 대응하는 apperrors 에러를 원인으로 사용합니다.
func newHTTPStatusError(resp *http.Response, snippet string, cause error) *HTTPStatusError {
	urlStr := ""
	if resp.Request != nil {
		urlStr = redactURL(resp.Request.URL)
	}
	if cause == nil {
		cause = newErrHTTPStatus(statusErrorType(resp.StatusCode), resp.Status, urlStr)
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         urlStr,
		Header:      redactHeaders(resp.Header),
		BodySnippet: snippet,
		Cause:       cause,
	}
}

// statusErrorType HTTP 상태 코드를 apperrors 타입으로 분류합니다.
func statusErrorType(code int) apperrors.ErrorType {
	switch {
	case code == http.StatusNotFound:
		return apperrors.NotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return apperrors.Forbidden
	case code == http.StatusBadRequest:
		return apperrors.InvalidInput
	case code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}
