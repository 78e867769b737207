package parser

import (
	"regexp"
	"strings"
)

// blockSignatures 봇 차단 또는 캡차 페이지에서 발견되는 문구
var blockSignatures = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Sorry!\s*Access\s*denied`),
	regexp.MustCompile(`(?i)Access Denied`),
	regexp.MustCompile(`(?i)captcha`),
	regexp.MustCompile(`(?i)Pardon Our Interruption`),
}

// blockedTitles 상품 정보 없이 사이트 이름만 제목으로 내려오는 경우의 제목
var blockedTitles = map[string]struct{}{
	"coupang.com":     {},
	"www.coupang.com": {},
	"coupang":         {},
}

// MatchesBlockSignature s에 차단 페이지 문구가 포함되어 있는지 확인합니다.
func MatchesBlockSignature(s string) bool {
	_, ok := BlockSignature(s)
	return ok
}

// BlockSignature s에서 처음 발견된 차단 문구 패턴을 반환합니다.
func BlockSignature(s string) (string, bool) {
	for _, re := range blockSignatures {
		if re.MatchString(s) {
			return re.String(), true
		}
	}
	return "", false
}

// IsBlockedTitle 제목이 도메인 이름뿐이어서 상품 페이지가 아닌 것으로 판단되면 true를 반환합니다.
func IsBlockedTitle(title string) bool {
	_, ok := blockedTitles[strings.ToLower(strings.TrimSpace(title))]
	return ok
}
