package ladder

import (
	"fmt"
	"regexp"

	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/extractor/parser"
)

// DefaultMinBodyBytes 이보다 짧은 본문은 정상 상품 페이지로 보지 않습니다.
const DefaultMinBodyBytes = 2000

var titleTagRegex = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Validator 차단 페이지나 빈 페이지를 걸러냅니다.
type Validator struct {
	MinBodyBytes int
}

// Validate 정상 페이지가 아니면 BlockedOrEmptyPage 실패를 반환합니다.
func (v Validator) Validate(html string) error {
	if len(html) < v.MinBodyBytes {
		return failure.New(failure.BlockedOrEmptyPage, fmt.Sprintf("본문이 너무 짧습니다 (%d < %d bytes)", len(html), v.MinBodyBytes))
	}

	if sig, ok := parser.BlockSignature(html); ok {
		return failure.New(failure.BlockedOrEmptyPage, fmt.Sprintf("차단 페이지 문구가 감지되었습니다 (%s)", sig))
	}

	if m := titleTagRegex.FindStringSubmatch(html); m != nil && parser.IsBlockedTitle(m[1]) {
		return failure.New(failure.BlockedOrEmptyPage, fmt.Sprintf("상품 정보가 없는 페이지입니다 (title=%q)", m[1]))
	}

	return nil
}
