package scraper

import (
	"fmt"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
)

var (
	// ErrDecodeTargetNil JSON 디코딩 대상이 nil일 때의 에러입니다.
	ErrDecodeTargetNil = apperrors.New(apperrors.Internal, "JSON 디코딩 실패: 결과를 저장할 변수(v)가 nil입니다")
)

func newErrDecodeTargetInvalidType(v any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("JSON 디코딩 실패: 결과를 저장할 변수(v)는 nil이 아닌 포인터여야 합니다 (입력된 타입: %T)", v))
}

func newErrEncodeJSONBody(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "요청 본문을 JSON 형식으로 인코딩할 수 없습니다")
}

func newErrReadRequestBody(err error) error {
	return apperrors.Wrap(err, apperrors.Internal, "요청 본문 데이터 스트림을 읽는 중 오류가 발생했습니다")
}

func newErrRequestBodyTooLarge(limit int64) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("요청 본문이 허용된 크기(%d 바이트)를 초과했습니다", limit))
}

func newErrCreateHTTPRequest(url string, err error) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, fmt.Sprintf("HTTP 요청 생성에 실패했습니다 (URL: %s)", url))
}

func newErrHTTPRequestCanceled(url string, err error) error {
	return apperrors.Wrap(err, apperrors.Timeout, fmt.Sprintf("요청이 취소되었거나 기한이 만료되었습니다 (URL: %s)", url))
}

func newErrNetworkError(url string, err error) error {
	return apperrors.Wrap(err, apperrors.Unavailable, fmt.Sprintf("페이지(%s) 요청 중 네트워크 오류가 발생했습니다", url))
}

func newErrReadResponseBody(err error) error {
	return apperrors.Wrap(err, apperrors.ExecutionFailed, "응답 본문을 읽는 중 I/O 오류가 발생했습니다")
}

func newErrResponseBodyTooLarge(limit int64, url string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("응답 본문의 크기가 허용된 제한(%d 바이트)을 초과했습니다 (URL: %s)", limit, url))
}

func newErrUnexpectedHTMLResponse(url, contentType string) error {
	return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("JSON을 기대했으나 HTML 응답이 수신되었습니다 (URL: %s, Content-Type: %s)", url, contentType))
}

func newErrJSONParseFailed(err error, url string, offset int64) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("JSON 응답을 해석할 수 없습니다 (URL: %s, offset: %d)", url, offset))
}

func newErrJSONUnexpectedToken(url string) error {
	return apperrors.New(apperrors.ParsingFailed, fmt.Sprintf("JSON 데이터 뒤에 불필요한 데이터가 포함되어 있습니다 (URL: %s)", url))
}
