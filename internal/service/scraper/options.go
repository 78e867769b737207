package scraper

// Option Scraper 구성을 위한 옵션 함수 타입입니다.
type Option func(*scraper)

// WithMaxRequestBodySize 요청 본문의 최대 크기(바이트)를 설정합니다. 0 이하는 무시됩니다.
func WithMaxRequestBodySize(size int64) Option {
	return func(s *scraper) {
		if size > 0 {
			s.maxRequestBodySize = size
		}
	}
}

// WithMaxResponseBodySize 응답 본문의 최대 크기(바이트)를 설정합니다. 0 이하는 무시됩니다.
// 제한을 넘긴 응답은 오류로 처리됩니다.
func WithMaxResponseBodySize(size int64) Option {
	return func(s *scraper) {
		if size > 0 {
			s.maxResponseBodySize = size
		}
	}
}

// WithAllowedStatusCodes 성공으로 간주할 상태 코드를 지정합니다.
// 기본값은 200, 201, 202, 204입니다.
func WithAllowedStatusCodes(codes ...int) Option {
	return func(s *scraper) {
		if len(codes) > 0 {
			s.allowedStatusCodes = codes
		}
	}
}
