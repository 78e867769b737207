package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

var (
	nuxtAssignRegex = regexp.MustCompile(`window\.__NUXT__\s*=\s*`)

	// nuxtLazyRegex 중괄호 짝을 찾지 못했을 때 사용하는 느슨한 패턴
	nuxtLazyRegex = regexp.MustCompile(`(?s)window\.__NUXT__\s*=\s*(\{.*?\});`)

	statePriceRegex = regexp.MustCompile(`"(couponPrice|finalPrice|discountedPrice|salePrice|lowPrice|price|totalPrice|optionPrice|dealPrice|memberPrice|cardPrice|instantDiscountPrice)"\s*:\s*"?([\d,.]+)"?`)

	stateNameRegexes = []*regexp.Regexp{
		regexp.MustCompile(`"productName"\s*:\s*("(?:[^"\\]|\\.)*")`),
		regexp.MustCompile(`"name"\s*:\s*("(?:[^"\\]|\\.)*")`),
	}
)

// scanEmbeddedState 서버 렌더링 프레임워크가 페이지에 심어 둔 상태 JSON을 훑습니다.
// 배포마다 Nuxt 방식과 Next.js 방식이 섞여 있으므로 둘 다 확인합니다.
func (p *Parser) scanEmbeddedState(html string, doc *goquery.Document, c *collector) {
	if blob, ok := extractNuxtState(html); ok {
		p.scanStateBlob(blob, ProviderNuxt, c)
	}

	if doc != nil {
		if blob := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text()); blob != "" {
			p.scanStateBlob(blob, ProviderNextData, c)
		}
	}
}

func (p *Parser) scanStateBlob(blob, provider string, c *collector) {
	text := blob
	if gjson.Valid(blob) {
		text = gjson.Get(blob, "@ugly").Raw
	}

	for _, m := range statePriceRegex.FindAllStringSubmatch(text, -1) {
		c.addPrice(m[2], SourceEmbeddedState)
	}

	for _, re := range stateNameRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			// 캡처한 값은 따옴표를 포함한 JSON 문자열이므로 gjson으로 이스케이프를 해제한다.
			if c.setTitle(gjson.Parse(m[1]).String(), provider) {
				return
			}
		}
	}
}

// extractNuxtState window.__NUXT__ 대입문의 객체 리터럴을 잘라냅니다.
// 문자열 안의 중괄호는 세지 않습니다.
func extractNuxtState(html string) (string, bool) {
	loc := nuxtAssignRegex.FindStringIndex(html)
	if loc == nil {
		return "", false
	}

	start := loc[1]
	if start >= len(html) || html[start] != '{' {
		if m := nuxtLazyRegex.FindStringSubmatch(html); m != nil {
			return m[1], true
		}
		return "", false
	}

	if end := matchBrace(html, start); end > start {
		return html[start : end+1], true
	}

	if m := nuxtLazyRegex.FindStringSubmatch(html); m != nil {
		return m[1], true
	}
	return "", false
}

// matchBrace s[start]의 '{'와 짝을 이루는 '}'의 위치를 반환합니다. 짝이 없으면 -1입니다.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	var quote byte

	for i := start; i < len(s); i++ {
		ch := s[i]

		if inString {
			switch ch {
			case '\\':
				i++
			case quote:
				inString = false
			}
			continue
		}

		switch ch {
		case '"', '\'', '`':
			inString, quote = true, ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
