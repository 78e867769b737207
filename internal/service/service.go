// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 생명주기를 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service main에서 일괄로 시작하고 종료하는 서비스입니다.
//
// 호출자는 Start 전에 serviceStopWG.Add(1)을 호출하며, 서비스는 serviceStopCtx가 취소되어
// 정리가 끝나면 serviceStopWG.Done()을 호출합니다. Start가 오류를 반환하는 경우에도 Done은 호출됩니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
