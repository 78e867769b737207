package constants

import "time"

// 보안 및 리소스 보호 관련 상수입니다.
const (
	// DefaultMaxBodySize 요청 본문의 최대 크기. 요청은 URL 하나만 담는다.
	DefaultMaxBodySize = "64K"

	DefaultReadTimeout       = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWriteTimeout      = 40 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// DefaultRequestTimeout 설정이 없을 때 적용되는 요청 처리 제한 시간
	DefaultRequestTimeout = 15 * time.Second

	DefaultRateLimitPerSecond = 5
	DefaultRateLimitBurst     = 10
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"access_key",
	"secret_key",
	"token",
	"password",
}
