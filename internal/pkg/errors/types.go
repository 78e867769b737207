package errors

import "strconv"

// ErrorType 에러의 성격을 분류합니다.
//
// HTTP 응답 코드 결정, 로그 레벨 선택, 재시도 여부 판단 등은 모두 이 값을 기준으로 합니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그로 간주)
	Internal

	// System 네트워크, 파일 I/O 등 인프라 수준의 장애
	System

	// Unauthorized 자격 증명 누락 또는 불일치
	Unauthorized

	// Forbidden 접근 거부 (차단 페이지, 401/403 응답 등)
	Forbidden

	// InvalidInput 잘못된 입력값
	InvalidInput

	// NotFound 리소스 또는 추출 대상 데이터를 찾을 수 없음
	NotFound

	// ExecutionFailed 외부 API 호출 등 작업 실행 실패
	ExecutionFailed

	// ParsingFailed HTML/JSON 파싱 또는 형식 변환 실패
	ParsingFailed

	// Timeout 시간 예산 또는 요청 타임아웃 초과
	Timeout

	// Unavailable 업스트림의 일시적 사용 불가 (429, 5xx 등)
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	Unauthorized:    "Unauthorized",
	Forbidden:       "Forbidden",
	InvalidInput:    "InvalidInput",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

// String 에러 타입의 이름을 반환합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
