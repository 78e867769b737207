package constants

// 시스템 시작/구동 시 발생할 수 있는 크리티컬한 패닉 메시지 상수입니다.
const (
	PanicMsgAppConfigRequired        = "AppConfig는 필수입니다"
	PanicMsgProductExtractorRequired = "ProductExtractor는 필수입니다"
	PanicMsgURLNormalizerRequired    = "URLNormalizer는 필수입니다"
	PanicMsgDeeplinkCreatorRequired  = "DeeplinkCreator는 필수입니다"

	PanicMsgRateLimitRequestsPerSecondInvalid = "[RateLimiting] requestsPerSecond는 양수여야 합니다"
	PanicMsgRateLimitBurstInvalid             = "[RateLimiting] burst는 양수여야 합니다"
)
