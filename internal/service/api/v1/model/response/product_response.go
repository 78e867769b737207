// Package response v1 API 응답 본문 모델을 정의합니다.
package response

// ProductInfoResponse 상품 정보 추출 성공 응답
type ProductInfoResponse struct {
	Success bool `json:"success" example:"true"`

	// FinalURL 정규화된 상품 URL
	FinalURL string `json:"finalUrl" example:"https://www.coupang.com/vp/products/7335597976?itemId=18741704367"`

	// Title 상품명. 찾지 못하면 null
	Title *string `json:"title" example:"사과 1.5kg"`

	// Price 최저가(원). 찾지 못하면 null
	Price *int64 `json:"price" example:"19900"`

	Currency string `json:"currency" example:"KRW"`

	// Provider 상품명을 찾은 출처 (json-ld, meta-og, title-tag, none 등)
	Provider string `json:"provider" example:"json-ld"`

	// Strategy 페이지를 가져온 전략. 추가 추출을 수행했다면 "a+b" 형식
	Strategy string `json:"strategy" example:"static-desktop"`

	Escalated bool `json:"escalated" example:"false"`

	// Debug 요청에 debug=true를 지정한 경우에만 포함됩니다.
	Debug *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo 가격 후보 목록 (중복 제거, 오름차순, 최대 20개)
type DebugInfo struct {
	Prices []int64 `json:"prices" example:"19900,25000"`
}

// FailureResponse 처리된 실패 응답
type FailureResponse struct {
	Success bool `json:"success" example:"false"`

	// FinalURL URL 정규화까지 성공했다면 정규화된 URL
	FinalURL string `json:"finalUrl,omitempty"`

	// Error 실패 분류 (MalformedUrl, AllStrategiesExhausted, NoDataExtracted 등)
	Error string `json:"error" example:"AllStrategiesExhausted"`

	// Reason 사람이 읽을 수 있는 실패 사유
	Reason string `json:"reason,omitempty" example:"static-desktop: BlockedOrEmptyPage (차단 페이지)"`
}

// DeeplinkResponse 딥링크 생성 성공 응답
type DeeplinkResponse struct {
	Success     bool   `json:"success" example:"true"`
	OriginalURL string `json:"originalUrl" example:"https://www.coupang.com/vp/products/7335597976"`
	ShortenURL  string `json:"shortenUrl" example:"https://link.coupang.com/a/bAbCdE"`
	LandingURL  string `json:"landingUrl" example:"https://link.coupang.com/re/AFFSDP?lptag=AF1234567"`
}
