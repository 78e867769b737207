package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var shopTitleSuffixes = []string{" - 쿠팡!", " | 쿠팡!", " - 쿠팡", " | 쿠팡"}

// scanMeta og:title, title 메타 태그와 상품 가격 메타 태그를 확인합니다.
func (p *Parser) scanMeta(doc *goquery.Document, c *collector) {
	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		c.setTitle(content, ProviderMetaOG)
	}
	if content, ok := doc.Find(`meta[name="title"]`).First().Attr("content"); ok {
		c.setTitle(content, ProviderMetaTitle)
	}

	doc.Find(`meta[property="product:price:amount"], meta[property="og:price:amount"]`).Each(func(_ int, s *goquery.Selection) {
		c.addPrice(s.AttrOr("content", ""), SourceMeta)
	})
}

// scanTitleTag 다른 출처에서 상품명을 찾지 못했을 때 <title>을 사용합니다.
// 차단 페이지의 제목이나 도메인 이름뿐인 제목은 버립니다.
func (p *Parser) scanTitleTag(doc *goquery.Document, c *collector) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" || IsBlockedTitle(title) || MatchesBlockSignature(title) {
		return
	}

	for _, suffix := range shopTitleSuffixes {
		if trimmed, ok := strings.CutSuffix(title, suffix); ok {
			title = trimmed
			break
		}
	}

	c.setTitle(title, ProviderHTMLTitle)
}
