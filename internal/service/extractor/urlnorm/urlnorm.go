// Package urlnorm 쿠팡 상품 URL을 정규화합니다.
//
// 단축 링크(link.coupang.com)를 해석하고, 추적용 쿼리 파라미터를 제거한 뒤
// 상품 경로가 확인되면 https://www.coupang.com/vp/products/<id> 형태로 다시 씁니다.
package urlnorm

import (
	"context"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/fetcher"
	applog "github.com/koreahan/coupang/pkg/log"
)

const component = "extractor.urlnorm"

const (
	// CanonicalHost 정규화된 상품 URL의 호스트
	CanonicalHost = "www.coupang.com"

	bareHost = "coupang.com"

	defaultMaxHops = 5
	defaultTimeout = 2 * time.Second
)

var productPathRegex = regexp.MustCompile(`/(vp/)?products/(\d+)`)

// trackingParams 삭제 대상 추적 파라미터 목록입니다. 목록에 없는 파라미터는 그대로 통과합니다.
var trackingParams = []string{
	"redirect", "src", "addtag", "itime", "lptag", "wTime", "wPcid", "wRef", "traceid",
	"pageType", "pageValue", "spec", "ctag", "mcid", "placementid", "clickBeacon",
	"campaignid", "puidType", "contentcategory", "imgsize", "pageid", "tsource",
	"deviceid", "token", "contenttype", "subid", "sig", "impressionid", "campaigntype",
	"puid", "requestid", "ctime", "contentkeyword", "portal", "landing_exp", "subparam",
}

// NormalizedURL 정규화 결과
type NormalizedURL struct {
	URL          string
	ProductID    string
	ItemID       string
	VendorItemID string

	// Canonical 상품 경로가 인식되어 정규 형태로 다시 쓰였는지 여부
	Canonical bool

	// ShortLinkResolved 단축 링크를 따라가 최종 URL을 얻었는지 여부
	ShortLinkResolved bool
}

// Config Normalizer 설정
type Config struct {
	ShortLinkHosts []string
	MaxHops        int
	Timeout        time.Duration
}

// Normalizer URL 정규화기. 단축 링크 해석에 사용하는 Fetcher는 리다이렉트를 따라가지 않아야 합니다.
type Normalizer struct {
	fetcher fetcher.Fetcher

	shortLinkHosts []string
	maxHops        int
	timeout        time.Duration
}

// New f가 nil이면 패닉이 발생합니다.
func New(f fetcher.Fetcher, cfg Config) *Normalizer {
	if f == nil {
		panic("단축 링크 해석용 Fetcher는 필수입니다")
	}

	n := &Normalizer{
		fetcher:        f,
		shortLinkHosts: make([]string, 0, len(cfg.ShortLinkHosts)),
		maxHops:        cfg.MaxHops,
		timeout:        cfg.Timeout,
	}
	for _, h := range cfg.ShortLinkHosts {
		n.shortLinkHosts = append(n.shortLinkHosts, strings.ToLower(strings.TrimSpace(h)))
	}
	if n.maxHops <= 0 {
		n.maxHops = defaultMaxHops
	}
	if n.timeout <= 0 {
		n.timeout = defaultTimeout
	}

	return n
}

// Normalize raw를 정규화합니다. URL로 해석할 수 없으면 MalformedUrl 실패를 반환합니다.
// 단축 링크 해석 실패는 경고만 남기고 원래 URL로 계속 진행합니다.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (*NormalizedURL, error) {
	u, err := parse(raw)
	if err != nil {
		return nil, err
	}

	result := &NormalizedURL{}

	if n.isShortLink(u.Hostname()) {
		resolved, err := n.resolve(ctx, u)
		if err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"url":   fetcher.RedactURL(u.String()),
				"error": err.Error(),
			}).Warn("단축 링크 해석에 실패하여 입력 URL을 그대로 사용합니다")
		} else {
			u = resolved
			result.ShortLinkResolved = true
		}
	}

	query := u.Query()
	result.ItemID = query.Get("itemId")
	result.VendorItemID = query.Get("vendorItemId")

	for _, p := range trackingParams {
		query.Del(p)
	}
	u.RawQuery = query.Encode()

	m := productPathRegex.FindStringSubmatch(u.EscapedPath())
	if m == nil {
		result.URL = u.String()
		return result, nil
	}

	result.ProductID = m[2]
	result.Canonical = true
	result.URL = canonicalURL(result.ProductID, result.ItemID, result.VendorItemID)

	return result, nil
}

// canonicalURL itemId, vendorItemId 순서를 고정하여 조립합니다.
func canonicalURL(productID, itemID, vendorItemID string) string {
	var sb strings.Builder
	sb.WriteString("https://")
	sb.WriteString(CanonicalHost)
	sb.WriteString("/vp/products/")
	sb.WriteString(productID)

	sep := "?"
	if itemID != "" {
		sb.WriteString(sep + "itemId=" + url.QueryEscape(itemID))
		sep = "&"
	}
	if vendorItemID != "" {
		sb.WriteString(sep + "vendorItemId=" + url.QueryEscape(vendorItemID))
	}
	return sb.String()
}

func parse(raw string) (*url.URL, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, failure.New(failure.MalformedURL, "URL이 비어 있습니다")
	}

	// 예: www.coupang.com/vp/products/1 -> https://www.coupang.com/vp/products/1
	if !strings.Contains(s, "://") && looksLikeHost(s) {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, failure.Wrap(err, failure.MalformedURL, "URL 형식이 올바르지 않습니다")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, failure.New(failure.MalformedURL, "http 또는 https URL이어야 합니다")
	}
	if u.Hostname() == "" {
		return nil, failure.New(failure.MalformedURL, "URL에 호스트가 없습니다")
	}
	return u, nil
}

func looksLikeHost(s string) bool {
	host, _, _ := strings.Cut(s, "/")
	return strings.Contains(host, ".") && !strings.ContainsAny(host, " :?#")
}

func (n *Normalizer) isShortLink(host string) bool {
	return slices.Contains(n.shortLinkHosts, strings.ToLower(host))
}

func isCanonicalHost(host string) bool {
	host = strings.ToLower(host)
	return host == CanonicalHost || host == bareHost
}
