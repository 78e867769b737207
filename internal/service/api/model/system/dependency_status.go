package system

// DependencyStatus /health 응답에서 의존성 하나의 상태
//
// 키는 scraping_provider, affiliate, credit_monitor 중 하나이며,
// 키 미설정이나 크레딧 부족은 degraded, 크레딧 소진은 unhealthy로 보고됩니다.
type DependencyStatus struct {
	Status string `json:"status" example:"degraded"`
	// 설정 누락, 모니터 조회 오류, 크레딧 부족 등 상태를 설명하는 메시지
	Message string `json:"message,omitempty" example:"API 키가 설정되지 않음"`
}
