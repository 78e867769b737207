// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 상품 정보 추출과 딥링크 생성은 실패하더라도 success=false 본문과 함께 200으로 응답합니다.
// URL이 없거나 해석할 수 없는 경우만 400을 반환합니다.
package handler

import (
	"context"

	"github.com/koreahan/coupang/internal/service/affiliate"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/extractor"
	"github.com/koreahan/coupang/internal/service/extractor/urlnorm"
)

// ProductExtractor 상품 정보 추출기 (extractor.Extractor)
type ProductExtractor interface {
	Extract(ctx context.Context, rawURL string) (*extractor.Result, error)
}

// URLNormalizer 딥링크 생성 전 URL 정규화 (urlnorm.Normalizer)
type URLNormalizer interface {
	Normalize(ctx context.Context, raw string) (*urlnorm.NormalizedURL, error)
}

// DeeplinkCreator 쿠팡 파트너스 딥링크 생성기 (affiliate.Client)
type DeeplinkCreator interface {
	Configured() bool
	CreateDeeplink(ctx context.Context, urls ...string) ([]affiliate.Deeplink, error)
}

// Handler v1 API 요청을 처리하고 추출기/제휴 클라이언트를 연결하는 핸들러입니다.
type Handler struct {
	extractor  ProductExtractor
	normalizer URLNormalizer
	deeplinks  DeeplinkCreator
}

// NewHandler Handler 인스턴스를 생성합니다. 의존성이 nil이면 패닉이 발생합니다.
func NewHandler(ext ProductExtractor, normalizer URLNormalizer, deeplinks DeeplinkCreator) *Handler {
	if ext == nil {
		panic(constants.PanicMsgProductExtractorRequired)
	}
	if normalizer == nil {
		panic(constants.PanicMsgURLNormalizerRequired)
	}
	if deeplinks == nil {
		panic(constants.PanicMsgDeeplinkCreatorRequired)
	}

	return &Handler{
		extractor:  ext,
		normalizer: normalizer,
		deeplinks:  deeplinks,
	}
}
