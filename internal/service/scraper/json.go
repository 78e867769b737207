package scraper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/koreahan/coupang/internal/service/fetcher"
	applog "github.com/koreahan/coupang/pkg/log"
	"golang.org/x/net/html/charset"
)

func (s *scraper) FetchJSON(ctx context.Context, method, rawURL string, body any, header http.Header, v any) error {
	if v == nil {
		return ErrDecodeTargetNil
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newErrDecodeTargetInvalidType(v)
	}

	reqBody, err := s.prepareBody(ctx, body)
	if err != nil {
		return err
	}

	if reqBody != nil {
		if header == nil {
			header = make(http.Header)
		} else {
			header = header.Clone()
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json;charset=UTF-8")
		}
	}

	redacted := fetcher.RedactURL(rawURL)
	params := requestParams{
		Method:        method,
		URL:           rawURL,
		Body:          reqBody,
		Header:        header,
		DefaultAccept: "application/json",
		Validator: func(resp *http.Response, logger *applog.Entry) error {
			return verifyJSONContentType(resp, redacted, logger)
		},
	}

	result, logger, err := s.executeRequest(ctx, params)
	if err != nil {
		return err
	}
	defer result.Response.Body.Close()

	if result.Response.StatusCode == http.StatusNoContent {
		return nil
	}
	if result.IsTruncated {
		logger.WithField("limit_bytes", s.maxResponseBodySize).Warn("응답 본문 크기 초과로 JSON 파싱을 중단합니다")
		return newErrResponseBodyTooLarge(s.maxResponseBodySize, redacted)
	}

	contentType := result.Response.Header.Get("Content-Type")
	var reader io.Reader = result.Response.Body
	if r, err := charset.NewReader(result.Response.Body, contentType); err == nil {
		reader = r
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(v); err != nil {
		logger.WithError(err).WithField("body_preview", previewBody(result.Body)).Warn("JSON 응답 디코딩 실패")
		return newErrJSONParseFailed(err, redacted, decoder.InputOffset())
	}
	if _, err := decoder.Token(); err != io.EOF {
		return newErrJSONUnexpectedToken(redacted)
	}

	logger.Debug("JSON 응답 파싱 완료")
	return nil
}

func verifyJSONContentType(resp *http.Response, url string, logger *applog.Entry) error {
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if isHTMLContentType(contentType) {
		return newErrUnexpectedHTMLResponse(url, contentType)
	}
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "json") {
		logger.WithField("content_type", contentType).Warn("비표준 Content-Type 헤더가 감지되었지만 JSON 파싱을 계속합니다")
	}
	return nil
}
