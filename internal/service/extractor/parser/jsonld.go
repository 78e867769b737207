package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// scanJSONLD schema.org 구조화 데이터 블록에서 상품명, 가격, 통화를 추출합니다.
func (p *Parser) scanJSONLD(doc *goquery.Document, c *collector) {
	var products []gjson.Result

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" || !gjson.Valid(raw) {
			return
		}
		for _, obj := range flattenJSONLD(gjson.Parse(raw)) {
			if isProductLike(obj) {
				products = append(products, obj)
			}
		}
	})

	if len(products) == 0 {
		return
	}

	for _, prod := range products {
		if name := prod.Get("name"); name.Type == gjson.String && c.setTitle(name.String(), ProviderJSONLD) {
			break
		}
	}

	for _, prod := range products {
		for _, offer := range asList(prod.Get("offers")) {
			if currency := offer.Get("priceCurrency").String(); currency != "" {
				c.currency = strings.ToUpper(strings.TrimSpace(currency))
			}
			for _, key := range []string{"price", "lowPrice", "highPrice"} {
				c.addPrice(offer.Get(key).String(), SourceStructured)
			}
			for _, spec := range asList(offer.Get("priceSpecification")) {
				for _, key := range []string{"price", "minPrice", "maxPrice"} {
					c.addPrice(spec.Get(key).String(), SourceStructured)
				}
			}
		}
	}
}

// flattenJSONLD 배열로 감싼 블록, @graph 아래에 중첩된 블록, 단일 객체를 모두 객체 목록으로 펼칩니다.
func flattenJSONLD(block gjson.Result) []gjson.Result {
	switch {
	case block.IsArray():
		return block.Array()
	case block.Get("@graph").IsArray():
		return block.Get("@graph").Array()
	case block.IsObject():
		return []gjson.Result{block}
	}
	return nil
}

// isProductLike @type에 Product가 포함되어 있거나 name 필드가 있으면 상품으로 간주합니다.
func isProductLike(obj gjson.Result) bool {
	if !obj.IsObject() {
		return false
	}

	t := obj.Get("@type")
	switch {
	case t.IsArray():
		for _, v := range t.Array() {
			if v.String() == "Product" {
				return true
			}
		}
	case t.Type == gjson.String:
		if strings.Contains(t.String(), "Product") {
			return true
		}
	}

	return obj.Get("name").Exists()
}

// asList 객체는 원소 하나짜리 목록으로, 배열은 그대로 돌려줍니다.
func asList(r gjson.Result) []gjson.Result {
	switch {
	case r.IsArray():
		return r.Array()
	case r.IsObject():
		return []gjson.Result{r}
	}
	return nil
}
