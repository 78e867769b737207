package parser

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// DefaultMaxPrice 가격 후보로 인정하는 최대값(원). 관련 없는 큰 숫자가 섞여 들어오는 것을 막는다.
const DefaultMaxPrice = 100_000_000

// NormalizePrice 기본 상한으로 가격 문자열을 정규화합니다.
func NormalizePrice(raw string) (int64, bool) {
	return defaultParser.NormalizePrice(raw)
}

// NormalizePrice 가격 문자열을 정수로 변환합니다.
//
// 전각 문자를 반각으로 바꾼 뒤 숫자와 소수점 외의 문자를 모두 제거합니다.
// 첫 숫자 앞에 음수 부호가 있거나, 결과가 1 미만이거나, 상한을 넘으면 후보로 인정하지 않습니다.
//
// 예: "12,990" "12990원" "₩12,990" "１２，９９０" -> 12990
func (p *Parser) NormalizePrice(raw string) (int64, bool) {
	s := width.Narrow.String(raw)

	if i := strings.IndexAny(s, "0123456789"); i < 0 || strings.ContainsAny(s[:i], "-−") {
		return 0, false
	}

	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 0, false
	}
	if v > float64(p.maxPrice) {
		return 0, false
	}

	// 원화는 소수점 이하가 없으므로 버린다.
	return int64(v), true
}
