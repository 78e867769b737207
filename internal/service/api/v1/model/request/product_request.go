// Package request v1 API 요청 본문 모델을 정의합니다.
package request

// ProductInfoRequest 상품 정보 추출 요청
type ProductInfoRequest struct {
	// URL 쿠팡 상품 URL 또는 단축 링크. 스킴은 생략할 수 있습니다.
	URL string `json:"url" validate:"required,max=2048" korean:"URL" example:"https://www.coupang.com/vp/products/7335597976?itemId=18741704367"`

	// Debug 가격 후보 목록을 응답에 포함할지 여부
	Debug bool `json:"debug" example:"false"`
}

// DeeplinkRequest 제휴 딥링크 생성 요청
type DeeplinkRequest struct {
	URL string `json:"url" validate:"required,max=2048" korean:"URL" example:"https://www.coupang.com/vp/products/7335597976"`
}
