package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/koreahan/coupang/internal/pkg/mark"
	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/fetcher"
	"github.com/koreahan/coupang/internal/service/scraper"
	applog "github.com/koreahan/coupang/pkg/log"
)

// DefaultScrapingBeeEndpoint ScrapingBee HTML API 엔드포인트
const DefaultScrapingBeeEndpoint = "https://app.scrapingbee.com/api/v1"

const (
	renderWait    = "2000"
	renderWaitFor = `meta[property="og:title"], script[type="application/ld+json"]`
)

// Usage ScrapingBee 계정의 크레딧 사용량
type Usage struct {
	MaxAPICredit       int `json:"max_api_credit"`
	UsedAPICredit      int `json:"used_api_credit"`
	MaxConcurrency     int `json:"max_concurrency"`
	CurrentConcurrency int `json:"current_concurrency"`
}

// Remaining 남은 크레딧
func (u Usage) Remaining() int {
	return u.MaxAPICredit - u.UsedAPICredit
}

// ScrapingBee ScrapingBee HTML API를 통해 페이지를 가져옵니다.
type ScrapingBee struct {
	scraper  scraper.Scraper
	endpoint string
	apiKey   string

	// premiumDefault true이면 모든 요청에 프리미엄 프록시를 사용합니다.
	premiumDefault bool

	notifier alert.Notifier
}

var _ Provider = (*ScrapingBee)(nil)

// ScrapingBeeOption ScrapingBee 설정 옵션
type ScrapingBeeOption func(*ScrapingBee)

// WithEndpoint 엔드포인트를 바꿉니다. 빈 문자열은 무시됩니다.
func WithEndpoint(endpoint string) ScrapingBeeOption {
	return func(s *ScrapingBee) {
		if endpoint != "" {
			s.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithPremiumDefault 요청의 프록시 등급과 관계없이 프리미엄 프록시를 사용합니다.
func WithPremiumDefault(enabled bool) ScrapingBeeOption {
	return func(s *ScrapingBee) {
		s.premiumDefault = enabled
	}
}

// WithNotifier API 키가 거부되었을 때 운영 알림을 보냅니다.
func WithNotifier(n alert.Notifier) ScrapingBeeOption {
	return func(s *ScrapingBee) {
		if n != nil {
			s.notifier = n
		}
	}
}

// NewScrapingBee apiKey가 비어 있어도 생성은 되지만, 모든 요청이 ErrMissingAPIKey로 실패합니다.
func NewScrapingBee(sc scraper.Scraper, apiKey string, opts ...ScrapingBeeOption) *ScrapingBee {
	if sc == nil {
		panic("Scraper는 필수입니다")
	}

	s := &ScrapingBee{
		scraper:  sc,
		endpoint: DefaultScrapingBeeEndpoint,
		apiKey:   apiKey,
		notifier: alert.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ScrapingBee) Name() Name {
	return NameScrapingBee
}

// Configured API 키가 설정되어 있는지 여부
func (s *ScrapingBee) Configured() bool {
	return s.apiKey != ""
}

func (s *ScrapingBee) Fetch(ctx context.Context, req Request) (*Response, error) {
	if !s.Configured() {
		return nil, ErrMissingAPIKey
	}

	page, err := s.scraper.FetchPage(ctx, http.MethodGet, s.endpoint+"?"+s.query(req).Encode(), DeviceHeader(req.Device))
	if err != nil {
		s.checkAuthFailure(err)
		return nil, err
	}

	return &Response{
		HTML:       page.Body,
		StatusCode: page.StatusCode,
		FinalURL:   req.TargetURL,
		RawSize:    page.RawSize,
	}, nil
}

func (s *ScrapingBee) query(req Request) url.Values {
	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("url", req.TargetURL)
	q.Set("render_js", strconv.FormatBool(req.Render))
	if req.Proxy == ProxyPremium || s.premiumDefault {
		q.Set("premium_proxy", "true")
	}
	q.Set("country_code", "kr")
	if req.Render {
		q.Set("wait", renderWait)
		q.Set("wait_for", renderWaitFor)
	}
	q.Set("forward_headers", "true")
	return q
}

// Usage 계정의 크레딧 사용량을 조회합니다.
func (s *ScrapingBee) Usage(ctx context.Context) (*Usage, error) {
	if !s.Configured() {
		return nil, ErrMissingAPIKey
	}

	q := url.Values{}
	q.Set("api_key", s.apiKey)

	var usage Usage
	if err := s.scraper.FetchJSON(ctx, http.MethodGet, s.endpoint+"/usage?"+q.Encode(), nil, nil, &usage); err != nil {
		s.checkAuthFailure(err)
		return nil, err
	}
	return &usage, nil
}

// checkAuthFailure 401/403 응답은 API 키 문제이므로 재시도로 해결되지 않습니다. 운영자에게 알립니다.
func (s *ScrapingBee) checkAuthFailure(err error) {
	var statusErr *fetcher.HTTPStatusError
	if !errors.As(err, &statusErr) {
		return
	}
	if statusErr.StatusCode != http.StatusUnauthorized && statusErr.StatusCode != http.StatusForbidden {
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"provider":    NameScrapingBee,
		"status_code": statusErr.StatusCode,
	}).Error("스크래핑 프로바이더가 API 키를 거부했습니다")

	s.notifier.Notify(mark.Alert.Prefix(fmt.Sprintf("[%s] 스크래핑 프로바이더가 API 키를 거부했습니다 (HTTP %d). scraping.api_key 설정을 확인하세요", NameScrapingBee, statusErr.StatusCode)))
}
