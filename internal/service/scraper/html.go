package scraper

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/koreahan/coupang/internal/service/fetcher"
	applog "github.com/koreahan/coupang/pkg/log"
	"golang.org/x/net/html/charset"
)

const htmlAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

func (s *scraper) FetchPage(ctx context.Context, method, rawURL string, header http.Header) (*Page, error) {
	params := requestParams{
		Method:        method,
		URL:           rawURL,
		Header:        header,
		DefaultAccept: htmlAccept,
		Validator:     verifyHTMLContentType,
	}

	result, logger, err := s.executeRequest(ctx, params)
	if err != nil {
		return nil, err
	}
	defer result.Response.Body.Close()

	if result.IsTruncated {
		logger.WithField("limit_bytes", s.maxResponseBodySize).Warn("응답 본문 크기 초과로 HTML 처리를 중단합니다")
		return nil, newErrResponseBodyTooLarge(s.maxResponseBodySize, fetcher.RedactURL(rawURL))
	}

	contentType := result.Response.Header.Get("Content-Type")
	body, err := decodeToUTF8(ctx, result.Body, contentType)
	if err != nil {
		logger.WithError(err).WithField("body_preview", previewBody(result.Body)).Warn("문자 인코딩 변환에 실패하여 원본 본문을 사용합니다")
		body = strings.ToValidUTF8(string(result.Body), "")
	}

	finalURL := rawURL
	if result.Response.Request != nil && result.Response.Request.URL != nil {
		finalURL = result.Response.Request.URL.String()
	}

	logger.Debug("HTML 페이지 수신 완료")

	return &Page{
		URL:         finalURL,
		StatusCode:  result.Response.StatusCode,
		Header:      result.Response.Header,
		ContentType: contentType,
		Body:        body,
		RawSize:     len(result.Body),
	}, nil
}

// decodeToUTF8 Content-Type의 charset, BOM, 문서 앞부분의 <meta charset> 순서로 인코딩을 판단하여 변환합니다.
func decodeToUTF8(ctx context.Context, raw []byte, contentType string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", err
	}

	decoded, err := io.ReadAll(&contextAwareReader{ctx: ctx, r: r})
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(decoded), ""), nil
}

// verifyHTMLContentType 비표준 Content-Type을 쓰는 서버가 많으므로 경고만 남기고 계속 진행합니다.
func verifyHTMLContentType(resp *http.Response, logger *applog.Entry) error {
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if contentType := resp.Header.Get("Content-Type"); contentType != "" && !isHTMLContentType(contentType) {
		logger.WithField("content_type", contentType).Debug("HTML이 아닌 Content-Type이 수신되었습니다 (파싱 계속 진행)")
	}
	return nil
}

func isHTMLContentType(contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType == "text/html" || mediaType == "application/xhtml+xml"
	}

	lower := strings.ToLower(strings.TrimSpace(contentType))
	return strings.HasPrefix(lower, "text/html") || strings.HasPrefix(lower, "application/xhtml+xml")
}
