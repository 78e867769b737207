package fetcher

import (
	"fmt"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
)

var (
	// ErrMaxRetriesExceeded 재시도 횟수를 모두 소진했을 때의 원인 에러입니다.
	ErrMaxRetriesExceeded = apperrors.New(apperrors.Unavailable, "최대 재시도 횟수를 초과하여 요청이 실패했습니다")
)

func newErrMaxRetriesExceeded(lastErr error) error {
	if lastErr == nil {
		return ErrMaxRetriesExceeded
	}
	return apperrors.Wrap(lastErr, apperrors.Unavailable, "최대 재시도 횟수를 초과하여 요청이 실패했습니다")
}

func newErrRetryDeadline(lastErr error, delay string) error {
	return apperrors.Wrap(lastErr, apperrors.Unavailable, fmt.Sprintf("요청 기한 내에 재시도(대기: %s)를 마칠 수 없어 재시도를 중단합니다", delay))
}

func newErrRetryAfterExceeded(lastErr error, retryAfter, maxDelay string) error {
	message := fmt.Sprintf("서버가 요구한 재시도 대기 시간(%s)이 허용 최대값(%s)을 초과합니다", retryAfter, maxDelay)
	if lastErr == nil {
		return apperrors.New(apperrors.Unavailable, message)
	}
	return apperrors.Wrap(lastErr, apperrors.Unavailable, message)
}

func newErrGetBodyFailed(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "재시도를 위한 요청 본문 재생성에 실패했습니다")
}

func newErrInvalidProxyURL(redacted string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("프록시 URL 형식이 올바르지 않습니다: %s", redacted))
}

func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문 크기가 제한(%d 바이트)을 초과했습니다", limit))
}

func newErrResponseBodyTooLargeByContentLength(length, limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문 크기(Content-Length: %d)가 제한(%d 바이트)을 초과했습니다", length, limit))
}

func newErrHTTPStatus(errType apperrors.ErrorType, status, url string) error {
	return apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다 (상태: %s, URL: %s)", status, url))
}
