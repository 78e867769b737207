// Package parser 상품 페이지 HTML에서 상품명과 가격 후보를 추출합니다.
//
// 구조화 데이터(JSON-LD), 프레임워크 상태(__NUXT__, __NEXT_DATA__), 메타 태그, 본문 가격 표기,
// <title> 태그를 서로 독립적으로 훑습니다. 상품명은 우선순위가 가장 높은 출처 하나를 쓰고,
// 가격 후보는 모든 출처의 합집합을 돌려줍니다. 어떤 출처가 깨져 있어도 나머지는 계속 진행합니다.
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultCurrency 구조화 데이터에 통화 코드가 없을 때 사용하는 통화
const DefaultCurrency = "KRW"

// Source 가격 후보가 발견된 출처
type Source string

const (
	SourceStructured    Source = "structured"
	SourceEmbeddedState Source = "embedded-state"
	SourceMeta          Source = "meta"
	SourceRawText       Source = "raw-text"
	SourceFallbackScan  Source = "fallback-scan"
)

// 상품명을 제공한 출처를 나타내는 태그
const (
	ProviderJSONLD    = "json-ld"
	ProviderNuxt      = "__NUXT__"
	ProviderNextData  = "__NEXT_DATA__"
	ProviderMetaOG    = "meta-og"
	ProviderMetaTitle = "meta-title"
	ProviderHTMLTitle = "html-title"
	ProviderNone      = "none"
)

// PriceCandidate 정규화를 통과한 가격 후보
type PriceCandidate struct {
	Value  int64
	Source Source
}

// ParsedInfo 페이지 하나에서 추출한 결과. 만들어진 뒤에는 변경하지 않습니다.
type ParsedInfo struct {
	Title      *string
	Candidates []PriceCandidate
	Currency   string
	Provider   string
}

// Parser 추출기. 0값 대신 New로 생성해야 가격 상한이 적용됩니다.
type Parser struct {
	maxPrice int64
}

// Option Parser 설정 옵션
type Option func(*Parser)

// WithMaxPrice 가격 후보의 상한을 지정합니다. 0 이하는 무시됩니다.
func WithMaxPrice(maxPrice int64) Option {
	return func(p *Parser) {
		if maxPrice > 0 {
			p.maxPrice = maxPrice
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{maxPrice: DefaultMaxPrice}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// Parse 기본 설정으로 html을 파싱합니다.
func Parse(html string) *ParsedInfo {
	return defaultParser.Parse(html)
}

// Parse html에서 상품명과 가격 후보를 추출합니다. 실패하지 않으며, 찾지 못한 값은 nil 또는 빈 목록입니다.
func (p *Parser) Parse(html string) *ParsedInfo {
	c := &collector{parser: p, currency: DefaultCurrency, provider: ProviderNone}

	// goquery(x/net/html)는 깨진 마크업도 관대하게 처리하므로 사실상 실패하지 않는다.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))

	if err == nil {
		p.scanJSONLD(doc, c)
	}
	p.scanEmbeddedState(html, doc, c)
	if err == nil {
		p.scanMeta(doc, c)
	}
	p.scanRawMarkers(html, SourceRawText, c)
	if err == nil {
		p.scanTitleTag(doc, c)
	}

	return c.result()
}

// collector 출처별 추출 결과를 모읍니다. 상품명은 처음 설정된 값만 유지합니다.
type collector struct {
	parser *Parser

	title      string
	provider   string
	currency   string
	candidates []PriceCandidate
}

func (c *collector) setTitle(title, provider string) bool {
	if c.title != "" {
		return false
	}
	title = cleanTitle(title)
	if title == "" {
		return false
	}

	c.title = title
	c.provider = provider
	return true
}

func (c *collector) addPrice(raw string, source Source) {
	if v, ok := c.parser.NormalizePrice(raw); ok {
		c.candidates = append(c.candidates, PriceCandidate{Value: v, Source: source})
	}
}

func (c *collector) result() *ParsedInfo {
	info := &ParsedInfo{
		Candidates: c.candidates,
		Currency:   c.currency,
		Provider:   c.provider,
	}
	if c.title != "" {
		title := c.title
		info.Title = &title
	}
	return info
}
