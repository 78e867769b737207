package provider

import (
	"fmt"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
)

var (
	// ErrMissingAPIKey 스크래핑 프로바이더 API 키가 설정되지 않았습니다.
	ErrMissingAPIKey = apperrors.New(apperrors.System, "스크래핑 프로바이더 API 키(scraping.api_key)가 설정되지 않았습니다")

	// ErrRenderNotSupported 직접 요청은 자바스크립트 렌더링을 지원하지 않습니다.
	ErrRenderNotSupported = apperrors.New(apperrors.InvalidInput, "직접 요청은 렌더링을 지원하지 않습니다")
)

func newErrUnknownProvider(name Name) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("알 수 없는 프로바이더입니다: '%s'", name))
}
