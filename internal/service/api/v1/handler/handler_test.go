package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/koreahan/coupang/internal/service/affiliate"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/extractor"
	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/extractor/urlnorm"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExtractor struct{ mock.Mock }

func (m *mockExtractor) Extract(ctx context.Context, rawURL string) (*extractor.Result, error) {
	args := m.Called(ctx, rawURL)
	res, _ := args.Get(0).(*extractor.Result)
	return res, args.Error(1)
}

type mockNormalizer struct{ mock.Mock }

func (m *mockNormalizer) Normalize(ctx context.Context, raw string) (*urlnorm.NormalizedURL, error) {
	args := m.Called(ctx, raw)
	n, _ := args.Get(0).(*urlnorm.NormalizedURL)
	return n, args.Error(1)
}

type mockDeeplinks struct {
	mock.Mock
	configured bool
}

func (m *mockDeeplinks) Configured() bool { return m.configured }

func (m *mockDeeplinks) CreateDeeplink(ctx context.Context, urls ...string) ([]affiliate.Deeplink, error) {
	args := m.Called(ctx, urls)
	links, _ := args.Get(0).([]affiliate.Deeplink)
	return links, args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func post(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

const productURL = "https://www.coupang.com/vp/products/7335597976?itemId=18741704367"

func TestNewHandler_Panics(t *testing.T) {
	assert.Panics(t, func() { NewHandler(nil, &mockNormalizer{}, &mockDeeplinks{}) })
	assert.Panics(t, func() { NewHandler(&mockExtractor{}, nil, &mockDeeplinks{}) })
	assert.Panics(t, func() { NewHandler(&mockExtractor{}, &mockNormalizer{}, nil) })
}

func TestProductInfoHandler(t *testing.T) {
	exhausted := failure.New(failure.AllStrategiesExhausted, "모든 전략이 실패했습니다", "static-desktop: BlockedOrEmptyPage (차단 페이지)")

	tests := []struct {
		name       string
		body       string
		setup      func(m *mockExtractor)
		expectCode int
		expectJSON string
	}{
		{
			name: "성공",
			body: `{"url":"` + productURL + `"}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, productURL).Return(&extractor.Result{
					FinalURL: productURL, Title: ptr("사과 1.5kg"), Price: ptr(int64(19900)),
					Currency: "KRW", Provider: "json-ld", Strategy: "static-desktop",
					Candidates: []int64{19900, 25000},
				}, nil)
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":true,"finalUrl":"` + productURL + `","title":"사과 1.5kg","price":19900,
				"currency":"KRW","provider":"json-ld","strategy":"static-desktop","escalated":false}`,
		},
		{
			name: "debug 포함",
			body: `{"url":"  ` + productURL + ` ","debug":true}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, productURL).Return(&extractor.Result{
					FinalURL: productURL, Title: ptr("사과"), Price: ptr(int64(19900)),
					Currency: "KRW", Provider: "json-ld", Strategy: "static-desktop+escalation-rendered-premium",
					Escalated: true, Candidates: []int64{19900, 25000},
				}, nil)
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":true,"finalUrl":"` + productURL + `","title":"사과","price":19900,
				"currency":"KRW","provider":"json-ld","strategy":"static-desktop+escalation-rendered-premium","escalated":true,
				"debug":{"prices":[19900,25000]}}`,
		},
		{
			name: "가격 없이 상품명만",
			body: `{"url":"` + productURL + `","debug":true}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, productURL).Return(&extractor.Result{
					FinalURL: productURL, Title: ptr("사과"), Currency: "KRW", Provider: "meta-og", Strategy: "direct",
				}, nil)
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":true,"finalUrl":"` + productURL + `","title":"사과","price":null,
				"currency":"KRW","provider":"meta-og","strategy":"direct","escalated":false,"debug":{"prices":[]}}`,
		},
		{
			name:       "URL 누락",
			body:       `{}`,
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"MalformedUrl","reason":"No URL provided"}`,
		},
		{
			name:       "빈 본문",
			body:       ``,
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"MalformedUrl","reason":"No URL provided"}`,
		},
		{
			name:       "공백 URL",
			body:       `{"url":"   "}`,
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"MalformedUrl","reason":"No URL provided"}`,
		},
		{
			name:       "잘못된 JSON",
			body:       `{"url":`,
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"InvalidRequest","reason":"요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"}`,
		},
		{
			name: "URL 형식 오류",
			body: `{"url":"ftp://coupang.com/x"}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, "ftp://coupang.com/x").
					Return(nil, failure.New(failure.MalformedURL, "http 또는 https URL이어야 합니다"))
			},
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"MalformedUrl","reason":"http 또는 https URL이어야 합니다"}`,
		},
		{
			name: "전략 소진",
			body: `{"url":"` + productURL + `"}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, productURL).Return(&extractor.Result{FinalURL: productURL}, exhausted)
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":false,"finalUrl":"` + productURL + `","error":"AllStrategiesExhausted",
				"reason":"모든 전략이 실패했습니다: static-desktop: BlockedOrEmptyPage (차단 페이지)"}`,
		},
		{
			name: "데이터 없음",
			body: `{"url":"` + productURL + `"}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, productURL).
					Return(&extractor.Result{FinalURL: productURL}, failure.New(failure.NoDataExtracted, "페이지에서 상품명과 가격을 찾지 못했습니다"))
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":false,"finalUrl":"` + productURL + `","error":"NoDataExtracted","reason":"페이지에서 상품명과 가격을 찾지 못했습니다"}`,
		},
		{
			name: "예상하지 못한 오류",
			body: `{"url":"` + productURL + `"}`,
			setup: func(m *mockExtractor) {
				m.On("Extract", mock.Anything, productURL).Return(nil, errors.New("dial tcp: lookup app.scrapingbee.com?api_key=sb-secret-key"))
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":false,"error":"InternalError","reason":"` + constants.ErrMsgInternalServer + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &mockExtractor{}
			if tt.setup != nil {
				tt.setup(ext)
			}
			h := NewHandler(ext, &mockNormalizer{}, &mockDeeplinks{})

			rec := post(t, h.ProductInfoHandler, tt.body)

			assert.Equal(t, tt.expectCode, rec.Code)
			assert.JSONEq(t, tt.expectJSON, rec.Body.String())
			ext.AssertExpectations(t)
		})
	}
}

func TestDeeplinkHandler(t *testing.T) {
	canonical := "https://www.coupang.com/vp/products/7335597976"

	tests := []struct {
		name       string
		body       string
		configured bool
		setup      func(n *mockNormalizer, d *mockDeeplinks)
		expectCode int
		expectJSON string
	}{
		{
			name:       "성공",
			body:       `{"url":"coupang.com/vp/products/7335597976?src=1"}`,
			configured: true,
			setup: func(n *mockNormalizer, d *mockDeeplinks) {
				n.On("Normalize", mock.Anything, "coupang.com/vp/products/7335597976?src=1").
					Return(&urlnorm.NormalizedURL{URL: canonical, ProductID: "7335597976", Canonical: true}, nil)
				d.On("CreateDeeplink", mock.Anything, []string{canonical}).Return([]affiliate.Deeplink{{
					OriginalURL: canonical,
					ShortenURL:  "https://link.coupang.com/a/bAbCdE",
					LandingURL:  "https://link.coupang.com/re/AFFSDP?lptag=AF1",
				}}, nil)
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":true,"originalUrl":"` + canonical + `","shortenUrl":"https://link.coupang.com/a/bAbCdE",
				"landingUrl":"https://link.coupang.com/re/AFFSDP?lptag=AF1"}`,
		},
		{
			name:       "URL 누락",
			body:       `{"url":""}`,
			configured: true,
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"MalformedUrl","reason":"No URL provided"}`,
		},
		{
			name:       "키 미설정",
			body:       `{"url":"` + canonical + `"}`,
			configured: false,
			expectCode: http.StatusOK,
			expectJSON: `{"success":false,"error":"NotConfigured","reason":"제휴 API 키가 설정되지 않았습니다"}`,
		},
		{
			name:       "URL 형식 오류",
			body:       `{"url":"not a url"}`,
			configured: true,
			setup: func(n *mockNormalizer, d *mockDeeplinks) {
				n.On("Normalize", mock.Anything, "not a url").
					Return(nil, failure.New(failure.MalformedURL, "http 또는 https URL이어야 합니다"))
			},
			expectCode: http.StatusBadRequest,
			expectJSON: `{"success":false,"error":"MalformedUrl","reason":"http 또는 https URL이어야 합니다"}`,
		},
		{
			name:       "생성 실패",
			body:       `{"url":"` + canonical + `"}`,
			configured: true,
			setup: func(n *mockNormalizer, d *mockDeeplinks) {
				n.On("Normalize", mock.Anything, canonical).Return(&urlnorm.NormalizedURL{URL: canonical}, nil)
				d.On("CreateDeeplink", mock.Anything, []string{canonical}).Return(nil, errors.New("Invalid url"))
			},
			expectCode: http.StatusOK,
			expectJSON: `{"success":false,"finalUrl":"` + canonical + `","error":"DeeplinkFailed","reason":"Invalid url"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &mockNormalizer{}
			d := &mockDeeplinks{configured: tt.configured}
			if tt.setup != nil {
				tt.setup(n, d)
			}
			h := NewHandler(&mockExtractor{}, n, d)

			rec := post(t, h.DeeplinkHandler, tt.body)

			assert.Equal(t, tt.expectCode, rec.Code)
			assert.JSONEq(t, tt.expectJSON, rec.Body.String())
			n.AssertExpectations(t)
			d.AssertExpectations(t)
		})
	}
}
