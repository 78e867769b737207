package scraper

import (
	"context"
	"io"
)

// contextAwareReader Read를 호출할 때마다 Context 취소 여부를 먼저 확인합니다.
//
// 기본 Reader가 Read 내부에서 블로킹되면 다음 Read 호출 전까지는 취소를 감지하지 못합니다.
type contextAwareReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextAwareReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
