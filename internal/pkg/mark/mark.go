// Package mark 운영 알림 메시지 앞에 붙이는 이모지 상수를 모아 둡니다.
package mark

// Mark 알림 심각도를 나타내는 이모지
type Mark string

const (
	// 서비스 중단, API 키 거부 등 즉시 조치가 필요한 경우
	Alert Mark = "🚨"

	// 크레딧 부족 등 곧 조치가 필요한 경우
	Warning Mark = "⚠️"

	// 추출 연속 실패
	Blocked Mark = "🚫"
)

// Values 정의된 모든 마크
func Values() []Mark {
	return []Mark{Alert, Warning, Blocked}
}

// Prefix 메시지 앞에 마크와 공백 하나를 붙입니다. 마크가 비어 있으면 메시지를 그대로 반환합니다.
func (m Mark) Prefix(message string) string {
	if m == "" {
		return message
	}
	return string(m) + " " + message
}
