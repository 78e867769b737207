// Package strutil 문자열 정리 유틸리티를 제공합니다.
package strutil

import (
	"html"
	"regexp"
	"strings"
)

// htmlTagRegexp '<' 다음에 영문자가 오는 경우만 태그로 본다. "3 < 5" 같은 비교식은 남는다.
var htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백(개행, 탭 포함)을 하나로 축약합니다.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripHTMLTags HTML 태그를 제거하고 엔티티를 디코딩합니다.
//
// 예: "<b>스탠리</b> &amp; 텀블러" -> "스탠리 & 텀블러"
func StripHTMLTags(s string) string {
	return html.UnescapeString(htmlTagRegexp.ReplaceAllString(s, ""))
}

// CleanText HTML 태그와 엔티티를 정리한 뒤 공백을 정규화합니다.
func CleanText(s string) string {
	return NormalizeSpaces(StripHTMLTags(s))
}

// SplitAndTrim 구분자로 나눈 각 항목의 공백을 제거하고 빈 항목은 버립니다.
// 남는 항목이 없으면 nil을 반환합니다.
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}
