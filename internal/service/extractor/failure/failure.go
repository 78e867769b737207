// Package failure 상품 정보 추출 과정의 실패 종류를 정의합니다.
//
// 각 실패는 apperrors.AppError를 원인으로 감싸므로 apperrors.Is로 성격(입력 오류, 업스트림 장애 등)을
// 판단할 수 있고, KindOf로 추출 파이프라인 고유의 분류를 꺼낼 수 있습니다.
package failure

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
)

// Kind 추출 실패의 분류입니다. 값은 API 응답의 error 필드에 그대로 노출됩니다.
type Kind string

const (
	// MalformedURL 입력이 URL로 해석되지 않습니다. 재시도하지 않습니다.
	MalformedURL Kind = "MalformedUrl"

	// ShortLinkResolutionFailed 단축 링크 해석 중 네트워크 오류가 발생했습니다. 원래 URL로 계속 진행합니다.
	ShortLinkResolutionFailed Kind = "ShortLinkResolutionFailed"

	// UpstreamRateLimited 스크래핑 프로바이더가 재시도 후에도 429를 반환했습니다.
	UpstreamRateLimited Kind = "UpstreamRateLimited"

	// BlockedOrEmptyPage 응답은 받았지만 차단 페이지이거나 내용이 너무 짧습니다.
	BlockedOrEmptyPage Kind = "BlockedOrEmptyPage"

	// AllStrategiesExhausted 모든 전략이 실패했거나 시간 예산을 모두 사용했습니다.
	AllStrategiesExhausted Kind = "AllStrategiesExhausted"

	// NoDataExtracted 페이지는 정상이지만 제목과 가격을 모두 찾지 못했습니다.
	NoDataExtracted Kind = "NoDataExtracted"
)

// ErrorType 실패 종류에 대응하는 apperrors 타입을 반환합니다.
func (k Kind) ErrorType() apperrors.ErrorType {
	switch k {
	case MalformedURL:
		return apperrors.InvalidInput
	case ShortLinkResolutionFailed, UpstreamRateLimited, AllStrategiesExhausted:
		return apperrors.Unavailable
	case BlockedOrEmptyPage:
		return apperrors.Forbidden
	case NoDataExtracted:
		return apperrors.NotFound
	default:
		return apperrors.Unknown
	}
}

// Error 추출 파이프라인의 실패입니다.
type Error struct {
	Kind    Kind
	Message string

	// Reasons 전략별 실패 사유 등 세부 원인 목록
	Reasons []string

	cause error
}

// New 실패 종류에 맞는 AppError를 원인으로 가지는 Error를 생성합니다.
func New(kind Kind, message string, reasons ...string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Reasons: reasons,
		cause:   apperrors.New(kind.ErrorType(), message),
	}
}

// Wrap err를 원인으로 감쌉니다. err에 담긴 HTTPStatusError 등은 errors.As로 계속 꺼낼 수 있습니다.
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return New(kind, message)
	}
	return &Error{
		Kind:    kind,
		Message: message,
		cause:   apperrors.Wrap(err, kind.ErrorType(), message),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason())
}

// Reason 응답의 reason 필드에 사용되는 설명입니다. 세부 원인이 있으면 이어 붙입니다.
func (e *Error) Reason() string {
	if len(e.Reasons) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Reasons, "; ")
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf 에러 체인에서 가장 바깥쪽 Error의 종류를 찾습니다.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// Is 에러 체인에 지정한 종류의 Error가 있는지 확인합니다.
func Is(err error, kind Kind) bool {
	for err != nil {
		if fe, ok := err.(*Error); ok && fe.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
