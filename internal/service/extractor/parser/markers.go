package parser

import (
	"regexp"

	"github.com/koreahan/coupang/pkg/strutil"
)

// rawPriceRegexes 상품 상세 화면에 가격이 출력되는 마크업 패턴
var rawPriceRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?is)class="total-price[^"]*">.*?([\d,.]+)\s*원`),
	regexp.MustCompile(`(?is)class="prod-price[^"]*">.*?([\d,.]+)\s*원`),
	regexp.MustCompile(`(?i)aria-label="가격\s*([\d,.]+)\s*원"`),
	regexp.MustCompile(`(?i)data-price="([\d,.]+)"`),
	regexp.MustCompile(`(?i)data-rt-price="([\d,.]+)"`),
}

var (
	fallbackKeyRegex = regexp.MustCompile(`"(couponPrice|finalPrice|discountedPrice|salePrice|lowPrice|price|totalPrice)"\s*:\s*"?([\d,.]+)"?`)

	fallbackMetaRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]+property=["'](?:product:price:amount|og:price:amount)["'][^>]*content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]*property=["'](?:product:price:amount|og:price:amount)["']`),
	}
)

// scanRawMarkers 본문 마크업에 직접 출력된 가격 표기를 찾습니다.
func (p *Parser) scanRawMarkers(html string, source Source, c *collector) {
	for _, re := range rawPriceRegexes {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			c.addPrice(m[1], source)
		}
	}
}

// FallbackScan 기본 상한으로 FallbackScan을 수행합니다.
func FallbackScan(html string) []PriceCandidate {
	return defaultParser.FallbackScan(html)
}

// FallbackScan 구조를 해석하지 않고 html 원문 전체를 정규식으로 훑어 가격 후보를 찾습니다.
// 주 파서가 가격을 찾지 못했을 때 사용하며, 같은 값은 한 번만 포함됩니다.
func (p *Parser) FallbackScan(html string) []PriceCandidate {
	c := &collector{parser: p}

	p.scanRawMarkers(html, SourceFallbackScan, c)
	for _, m := range fallbackKeyRegex.FindAllStringSubmatch(html, -1) {
		c.addPrice(m[2], SourceFallbackScan)
	}
	for _, re := range fallbackMetaRegexes {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			c.addPrice(m[1], SourceFallbackScan)
		}
	}

	seen := make(map[int64]struct{}, len(c.candidates))
	candidates := make([]PriceCandidate, 0, len(c.candidates))
	for _, cand := range c.candidates {
		if _, dup := seen[cand.Value]; dup {
			continue
		}
		seen[cand.Value] = struct{}{}
		candidates = append(candidates, cand)
	}

	return candidates
}

func cleanTitle(s string) string {
	return strutil.CleanText(s)
}
