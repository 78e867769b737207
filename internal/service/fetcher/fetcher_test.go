package fetcher

import (
	"bytes"
	"io"
	"net/http"
	"sync/atomic"
)

// stubFetcher 호출 순번에 따라 응답을 돌려주는 테스트용 Fetcher
type stubFetcher struct {
	calls  atomic.Int32
	handle func(call int, req *http.Request) (*http.Response, error)
}

func (s *stubFetcher) Do(req *http.Request) (*http.Response, error) {
	n := int(s.calls.Add(1))
	return s.handle(n, req)
}

func (s *stubFetcher) Close() error { return nil }

func newResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Status:        http.StatusText(status),
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
