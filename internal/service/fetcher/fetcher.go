// Package fetcher 데코레이터 체인으로 조합되는 HTTP 요청 실행기를 제공합니다.
//
// 체인의 각 단계(로깅, User-Agent 주입, 동시성 제한, 재시도, 상태 코드 검증, 본문 크기 제한)는
// 모두 Fetcher 인터페이스를 구현하며 NewFromConfig가 정해진 순서로 조립합니다.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"sync"
)

const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)

	// Close 내부 Transport의 유휴 연결 등 자원을 정리합니다.
	Close() error
}

// Get 지정된 URL로 GET 요청을 전송합니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

const maxDrainBytes = 64 * 1024

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody 커넥션 재사용을 위해 남은 본문을 일정량까지 읽어 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}
