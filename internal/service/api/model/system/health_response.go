package system

import "time"

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 전체 헬스체크 상태: healthy, degraded, unhealthy
	Status string `json:"status" example:"healthy"`
	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`
	// 외부 의존성별 헬스체크 결과 (키: 의존성 이름)
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
	// 스크래핑 프로바이더 크레딧 사용량 (모니터가 비활성화되었거나 조회 전이면 생략)
	Usage *UsageStatus `json:"usage,omitempty"`
}

// UsageStatus 마지막 크레딧 조회 결과
type UsageStatus struct {
	Remaining int       `json:"remaining" example:"98000"`
	Max       int       `json:"max" example:"100000"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}
