// Package cronx 애플리케이션 전반에서 공통으로 사용하는 Cron 파서를 제공합니다.
package cronx

import "github.com/robfig/cron/v3"

// StandardParser 초 단위를 포함한 6필드 형식과 Descriptor(@every 등)를 지원하는 파서를 반환합니다.
//
// 필드 순서: [초] [분] [시] [일] [월] [요일]
//
//	"0 */10 * * * *" : 10분마다 0초에 실행
//	"@every 30m"     : 30분 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
