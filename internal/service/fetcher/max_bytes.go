package fetcher

import (
	"errors"
	"io"
	"net/http"
)

const (
	defaultMaxBytes = 10 * 1024 * 1024

	// NoLimit 응답 본문 크기를 제한하지 않습니다.
	NoLimit = -1
)

// MaxBytesFetcher 응답 본문이 제한 크기를 넘으면 읽기 도중 오류를 반환합니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

var _ Fetcher = (*MaxBytesFetcher)(nil)

// NewMaxBytesFetcher limit이 NoLimit이면 delegate를 그대로 반환하고, 0 이하이면 10MB를 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	if limit == NoLimit {
		return delegate
	}
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, newErrResponseBodyTooLargeByContentLength(resp.ContentLength, f.limit)
	}

	if resp.Body != nil {
		resp.Body = &maxBytesReader{
			rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
			limit: f.limit,
		}
	}
	return resp, nil
}

func (f *MaxBytesFetcher) Close() error {
	return f.delegate.Close()
}

type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	var maxBytesErr *http.MaxBytesError
	if err != nil && errors.As(err, &maxBytesErr) {
		return n, newErrResponseBodyTooLarge(r.limit)
	}
	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}
