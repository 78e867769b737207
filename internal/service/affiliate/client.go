// Package affiliate 쿠팡 파트너스 Open API로 상품 URL의 제휴 딥링크를 생성합니다.
package affiliate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/scraper"
	applog "github.com/koreahan/coupang/pkg/log"
)

const component = "affiliate"

const (
	DefaultEndpoint = "https://api-gateway.coupang.com"

	deeplinkPath = "/v2/providers/affiliate_open_api/apis/openapi/v1/deeplink"
)

// ErrNotConfigured 제휴 API 키가 설정되지 않았습니다.
var ErrNotConfigured = apperrors.New(apperrors.System, "제휴 API 키(affiliate.access_key/secret_key/sub_id)가 설정되지 않았습니다")

// Deeplink 원본 URL 하나에 대한 딥링크
type Deeplink struct {
	OriginalURL string `json:"originalUrl"`
	ShortenURL  string `json:"shortenUrl"`
	LandingURL  string `json:"landingUrl"`
}

// Config 클라이언트 설정
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	SubID     string
}

// Configured 딥링크 생성에 필요한 키가 모두 있는지 여부
func (c Config) Configured() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.SubID != ""
}

// Client 딥링크 API 클라이언트
type Client struct {
	scraper  scraper.Scraper
	endpoint string
	subID    string
	signer   *Signer

	configured bool
}

// New sc가 nil이면 패닉이 발생합니다. 키가 없어도 생성되며, 이 경우 모든 요청이 ErrNotConfigured로 실패합니다.
func New(sc scraper.Scraper, cfg Config) *Client {
	if sc == nil {
		panic("Scraper는 필수입니다")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		scraper:    sc,
		endpoint:   endpoint,
		subID:      cfg.SubID,
		signer:     NewSigner(cfg.AccessKey, cfg.SecretKey),
		configured: cfg.Configured(),
	}
}

func (c *Client) Configured() bool {
	return c.configured
}

type deeplinkRequest struct {
	CoupangURLs []string `json:"coupangUrls"`
	SubID       string   `json:"subId,omitempty"`
}

type deeplinkResponse struct {
	RCode    resultCode `json:"rCode"`
	RMessage string     `json:"rMessage"`
	Data     []Deeplink `json:"data"`
}

// resultCode 응답마다 문자열("0") 또는 숫자(0)로 내려옵니다.
type resultCode string

func (r *resultCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = resultCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = resultCode(n.String())
	return nil
}

// CreateDeeplink urls 각각의 제휴 딥링크를 생성합니다. 결과 순서는 API 응답 순서를 따릅니다.
func (c *Client) CreateDeeplink(ctx context.Context, urls ...string) ([]Deeplink, error) {
	if !c.configured {
		return nil, ErrNotConfigured
	}
	if len(urls) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "딥링크를 생성할 URL이 없습니다")
	}

	header := make(http.Header)
	header.Set("Authorization", c.signer.Authorization(http.MethodPost, deeplinkPath, ""))

	var resp deeplinkResponse
	body := deeplinkRequest{CoupangURLs: urls, SubID: c.subID}
	if err := c.scraper.FetchJSON(ctx, http.MethodPost, c.endpoint+deeplinkPath, body, header, &resp); err != nil {
		return nil, err
	}

	if resp.RCode != "0" {
		applog.WithComponentAndFields(component, applog.Fields{
			"r_code":    resp.RCode,
			"r_message": resp.RMessage,
			"urls":      len(urls),
		}).Warn("제휴 API가 오류를 반환했습니다")

		return nil, apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("제휴 API 오류 (rCode=%s): %s", resp.RCode, resp.RMessage))
	}
	if len(resp.Data) == 0 {
		return nil, apperrors.New(apperrors.NotFound, "제휴 API 응답에 딥링크가 없습니다")
	}

	return resp.Data, nil
}
