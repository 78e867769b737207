// Package scraper fetcher 체인 위에서 HTML 페이지와 JSON API 응답을 읽어오는 도우미를 제공합니다.
//
// 응답 본문은 크기 제한 안에서 메모리로 읽은 뒤 UTF-8로 변환됩니다. 제한을 넘긴 응답은
// 잘린 상태로 파싱하지 않고 오류로 처리합니다.
package scraper

import (
	"context"
	"net/http"

	"github.com/koreahan/coupang/internal/service/fetcher"
)

const component = "scraper"

// defaultMaxBodySize 요청/응답 본문의 기본 최대 크기입니다.
const defaultMaxBodySize = 10 * 1024 * 1024

// Page 문자 인코딩 변환까지 마친 HTML 응답입니다.
type Page struct {
	// URL 리다이렉트를 모두 따라간 뒤의 최종 URL
	URL         string
	StatusCode  int
	Header      http.Header
	ContentType string

	// Body UTF-8로 변환된 본문
	Body string

	// RawSize 변환 전 본문의 바이트 수
	RawSize int
}

// Scraper HTML 페이지와 JSON API를 읽어오는 인터페이스입니다.
type Scraper interface {
	// FetchPage 요청을 보내 응답 본문을 UTF-8 문자열로 돌려줍니다.
	FetchPage(ctx context.Context, method, rawURL string, header http.Header) (*Page, error)

	// FetchJSON body가 nil이 아니면 JSON으로 직렬화하여 전송하고, 응답을 v에 디코딩합니다.
	// v는 nil이 아닌 포인터여야 합니다.
	FetchJSON(ctx context.Context, method, rawURL string, body any, header http.Header, v any) error
}

type scraper struct {
	fetcher fetcher.Fetcher

	maxRequestBodySize  int64
	maxResponseBodySize int64

	allowedStatusCodes []int
}

// New f가 nil이면 패닉이 발생합니다.
func New(f fetcher.Fetcher, opts ...Option) Scraper {
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	s := &scraper{
		fetcher:             f,
		maxRequestBodySize:  defaultMaxBodySize,
		maxResponseBodySize: defaultMaxBodySize,
		allowedStatusCodes:  []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
