// Package alert 운영자에게 보내는 알림(스크래핑 실패 누적, 크레딧 부족, API 키 거부)을 다룹니다.
package alert

const component = "alert"

// Notifier 운영 알림 발송기
type Notifier interface {
	// Notify 메시지를 발송 대기열에 넣습니다. 대기열에 넣지 못하면 false를 반환하며, 호출자를 막지 않습니다.
	Notify(message string) bool
}

// Noop 알림이 비활성화되었을 때 사용합니다.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) Notify(string) bool { return false }
