package fetcher

import (
	"io"
	"net/http"
	"sync"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// LimitFetcher 상위 서비스로 동시에 나가는 요청 수를 제한합니다.
//
// 슬롯은 응답 본문이 닫힐 때 반환됩니다. 슬롯을 기다리는 시간도 요청 Context의 기한에 포함됩니다.
type LimitFetcher struct {
	delegate Fetcher
	sem      *semaphore.Weighted
}

var _ Fetcher = (*LimitFetcher)(nil)

// NewLimitFetcher sem이 nil이면 delegate를 그대로 반환합니다.
func NewLimitFetcher(delegate Fetcher, sem *semaphore.Weighted) Fetcher {
	if sem == nil {
		return delegate
	}
	return &LimitFetcher{delegate: delegate, sem: sem}
}

func (f *LimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.sem.Acquire(req.Context(), 1); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Timeout, "상위 요청 슬롯을 기다리는 중 요청 기한이 만료되었습니다")
	}

	resp, err := f.delegate.Do(req)
	if err != nil || resp == nil || resp.Body == nil {
		f.sem.Release(1)
		return resp, err
	}

	resp.Body = &releasingBody{ReadCloser: resp.Body, release: func() { f.sem.Release(1) }}
	return resp, nil
}

func (f *LimitFetcher) Close() error {
	return f.delegate.Close()
}

type releasingBody struct {
	io.ReadCloser
	once    sync.Once
	release func()
}

func (b *releasingBody) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(b.release)
	return err
}
