package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	ErrMsgBadRequest            = "잘못된 요청입니다"
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"
	ErrMsgNoURLProvided         = "No URL provided"
	ErrMsgNotFound              = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgMethodNotAllowed      = "POST only"
	ErrMsgRequestEntityTooLarge = "요청 본문이 너무 큽니다"
	ErrMsgTooManyRequests       = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer        = "내부 서버 오류가 발생했습니다"
	ErrMsgServiceUnavailable    = "요청 처리 시간이 초과되었습니다"

	ErrMsgAffiliateNotConfigured = "제휴 API 키가 설정되지 않았습니다"
)

// 응답 본문의 error 필드에 들어가는 분류 값입니다. 추출 실패는 failure.Kind 값을 그대로 사용합니다.
const (
	ErrorInvalidRequest = "InvalidRequest"
	ErrorInternal       = "InternalError"
	ErrorNotConfigured  = "NotConfigured"
	ErrorDeeplinkFailed = "DeeplinkFailed"
)

// 내부 로깅을 위한 메시지 상수입니다.
const (
	LogMsgServiceStarting       = "API 서비스 시작중..."
	LogMsgServiceStarted        = "API 서비스 시작됨"
	LogMsgServiceAlreadyStarted = "API 서비스가 이미 시작됨!!!"
	LogMsgServiceStopping       = "API 서비스 중지중..."
	LogMsgServiceStopped        = "API 서비스 중지됨"
	LogMsgServiceUnexpectedExit = "API 서비스가 예기치 않게 종료되었습니다"

	LogMsgServiceHTTPServerStarting      = "API 서비스 > http 서버 시작"
	LogMsgServiceHTTPServerStopped       = "API 서비스 > http 서버 중지됨"
	LogMsgServiceHTTPServerShutdownError = "API 서비스 > http 서버 종료 중 오류 발생"
	LogMsgServiceHTTPServerFatalError    = "API 서비스 > http 서버를 구성하는 중에 치명적인 오류가 발생하였습니다."

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"
)
