// Package log logrus 기반의 애플리케이션 로깅 유틸리티를 제공합니다.
//
// 모든 로그는 component 필드를 포함하며, 파일 출력은 lumberjack으로 로테이션됩니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode 디버그 모드이면 Trace, 아니면 Info 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// WithComponent component 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}

// MaskSensitiveData API 키, 토큰 등을 로그에 남길 수 있도록 일부만 노출합니다.
//
//   - 3자 이하: 전체 마스킹
//   - 12자 이하: 앞 4자만 노출
//   - 그 외: 앞 4자와 뒤 4자 노출
func MaskSensitiveData(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}
