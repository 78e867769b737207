package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"

	// 외부 의존성 ID
	DependencyScrapingProvider = "scraping_provider"
	DependencyCreditMonitor    = "credit_monitor"
	DependencyAffiliate        = "affiliate"

	MsgDepStatusHealthy       = "정상 작동 중"
	MsgDepStatusNotConfigured = "API 키가 설정되지 않음"
	MsgDepStatusNotChecked    = "아직 조회하지 않음"
	MsgDepStatusLowCredit     = "크레딧 잔량이 기준치 미만"
)
