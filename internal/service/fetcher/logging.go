package fetcher

import (
	"net/http"
	"time"

	applog "github.com/koreahan/coupang/pkg/log"
)

// LoggingFetcher 재시도를 포함한 요청 전체의 결과와 소요 시간을 기록합니다.
type LoggingFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*LoggingFetcher)(nil)

func NewLoggingFetcher(delegate Fetcher) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate}
}

func (f *LoggingFetcher) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := f.delegate.Do(req)

	fields := applog.Fields{
		"method":   req.Method,
		"url":      redactURL(req.URL),
		"duration": time.Since(start).String(),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}

	if err != nil {
		fields["error"] = err.Error()
		// 404, 429 등 상위 로직에서 처리되는 실패가 대부분이므로 Warn으로 남긴다.
		applog.WithComponentAndFields(component, fields).Warn("HTTP 요청 실패")
		return resp, err
	}

	applog.WithComponentAndFields(component, fields).Debug("HTTP 요청 완료")
	return resp, nil
}

func (f *LoggingFetcher) Close() error {
	return f.delegate.Close()
}
