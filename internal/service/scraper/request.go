package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/fetcher"
	applog "github.com/koreahan/coupang/pkg/log"
)

type requestParams struct {
	Method        string
	URL           string
	Body          io.Reader
	Header        http.Header
	DefaultAccept string

	// Validator 상태 코드 검증을 통과한 응답에 대해 실행되는 추가 검증
	Validator func(resp *http.Response, logger *applog.Entry) error
}

// fetchResult 본문을 모두 메모리로 읽은 응답입니다. Response.Body는 Body를 다시 읽을 수 있는 Reader로 교체됩니다.
type fetchResult struct {
	Response    *http.Response
	Body        []byte
	IsTruncated bool
}

func (s *scraper) executeRequest(ctx context.Context, params requestParams) (fetchResult, *applog.Entry, error) {
	start := time.Now()
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"method": params.Method,
		"url":    fetcher.RedactURL(params.URL),
	})

	resp, err := s.sendRequest(ctx, params)
	if err != nil {
		logger.WithField("duration_ms", time.Since(start).Milliseconds()).WithError(err).Debug("HTTP 요청 전송 실패")
		return fetchResult{}, logger, err
	}

	if err := s.checkResponse(resp, params, logger); err != nil {
		drainAndClose(resp.Body)
		logger.WithField("duration_ms", time.Since(start).Milliseconds()).WithError(err).Debug("HTTP 응답 검증 실패")
		return fetchResult{}, logger, err
	}
	defer resp.Body.Close()

	body, truncated, err := s.readBodyWithLimit(ctx, resp)
	if err != nil {
		return fetchResult{}, logger, newErrReadResponseBody(err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	logger = logger.WithFields(applog.Fields{
		"status_code": resp.StatusCode,
		"body_size":   len(body),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return fetchResult{Response: resp, Body: body, IsTruncated: truncated}, logger, nil
}

func (s *scraper) sendRequest(ctx context.Context, params requestParams) (*http.Response, error) {
	redacted := fetcher.RedactURL(params.URL)

	req, err := http.NewRequestWithContext(ctx, params.Method, params.URL, params.Body)
	if err != nil {
		return nil, newErrCreateHTTPRequest(redacted, err)
	}
	if params.Header != nil {
		req.Header = params.Header.Clone()
	}
	if req.Header.Get("Accept") == "" && params.DefaultAccept != "" {
		req.Header.Set("Accept", params.DefaultAccept)
	}

	resp, err := s.fetcher.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, newErrHTTPRequestCanceled(redacted, err)
		}
		// 상태 코드 오류(HTTPStatusError)는 분류 정보를 그대로 유지한다.
		if apperrors.UnderlyingType(err) != apperrors.Unknown {
			return nil, err
		}
		return nil, newErrNetworkError(redacted, err)
	}

	return resp, nil
}

func (s *scraper) checkResponse(resp *http.Response, params requestParams, logger *applog.Entry) error {
	if err := fetcher.CheckResponseStatus(resp, s.allowedStatusCodes...); err != nil {
		return err
	}

	if params.Validator != nil {
		return params.Validator(resp, logger)
	}
	return nil
}

// readBodyWithLimit 제한보다 1바이트 더 읽어서 잘림 여부를 판단합니다.
func (s *scraper) readBodyWithLimit(ctx context.Context, resp *http.Response) ([]byte, bool, error) {
	if resp.StatusCode == http.StatusNoContent {
		return nil, false, nil
	}

	reader := &contextAwareReader{ctx: ctx, r: io.LimitReader(resp.Body, s.maxResponseBodySize+1)}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, false, err
	}

	if int64(len(data)) > s.maxResponseBodySize {
		return data[:s.maxResponseBodySize], true, nil
	}
	return data, false, nil
}

// prepareBody 요청 본문을 메모리에 올려 재시도 시 다시 보낼 수 있는 Reader로 만듭니다.
// bytes.Reader와 strings.Reader는 net/http가 GetBody를 자동으로 채워 줍니다.
func (s *scraper) prepareBody(ctx context.Context, body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	if rv := reflect.ValueOf(body); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}

	var data []byte
	switch v := body.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case io.Reader:
		b, err := io.ReadAll(&contextAwareReader{ctx: ctx, r: io.LimitReader(v, s.maxRequestBodySize+1)})
		if err != nil {
			return nil, newErrReadRequestBody(err)
		}
		data = b
	default:
		b, err := json.Marshal(body)
		if err != nil {
			return nil, newErrEncodeJSONBody(err)
		}
		data = b
	}

	if int64(len(data)) > s.maxRequestBodySize {
		return nil, newErrRequestBodyTooLarge(s.maxRequestBodySize)
	}
	return bytes.NewReader(data), nil
}

func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}

// previewBody 로그에 남길 본문 앞부분을 만듭니다.
func previewBody(body []byte) string {
	const maxPreviewSize = 512

	if len(body) == 0 {
		return ""
	}

	preview := strings.ToValidUTF8(string(body[:min(len(body), maxPreviewSize)]), "")
	for _, r := range preview {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return "[바이너리 데이터]"
		}
	}

	if len(body) > maxPreviewSize {
		return preview + "...(생략됨)"
	}
	return preview
}
