// Package mocks fetcher 패키지의 테스트용 Mock 구현체를 제공합니다.
package mocks

import (
	"bytes"
	"io"
	"net/http"

	"github.com/koreahan/coupang/internal/service/fetcher"
	"github.com/stretchr/testify/mock"
)

var _ fetcher.Fetcher = (*MockFetcher)(nil)

// MockFetcher testify/mock 기반 Fetcher
type MockFetcher struct {
	mock.Mock
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockFetcher) Close() error {
	return nil
}

// NewMockResponse 주어진 본문과 상태 코드의 응답을 생성합니다.
func NewMockResponse(body string, statusCode int) *http.Response {
	return &http.Response{
		StatusCode:    statusCode,
		Status:        http.StatusText(statusCode),
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		Header:        make(http.Header),
		ContentLength: int64(len(body)),
	}
}

// FetcherFunc 함수를 Fetcher로 사용하는 어댑터
type FetcherFunc func(req *http.Request) (*http.Response, error)

func (f FetcherFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func (f FetcherFunc) Close() error {
	return nil
}
