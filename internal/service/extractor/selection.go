package extractor

import (
	"slices"

	"github.com/koreahan/coupang/internal/service/extractor/parser"
)

// Policy 가격 후보 중 최종 가격을 고르는 방식
type Policy string

const (
	// PolicyMinimum 모든 출처의 후보 중 최솟값. 쿠폰가, 카드 할인가 등 가장 낮은 가격을 보고합니다.
	PolicyMinimum Policy = "minimum"

	// PolicyTrusted 후보가 있는 출처 중 신뢰도가 가장 높은 출처 안에서의 최솟값.
	// 본문에서 잘못 잡힌 작은 숫자가 구조화 데이터 가격을 덮어쓰지 않습니다.
	PolicyTrusted Policy = "trusted"
)

// maxDebugCandidates 디버그 응답에 포함하는 후보 가격의 최대 개수
const maxDebugCandidates = 20

// Attempt 페이지 하나에서 얻은 파싱 결과와 보조 스캔 결과
type Attempt struct {
	Strategy string
	Info     *parser.ParsedInfo
	Fallback []parser.PriceCandidate
}

func (a Attempt) candidates() []parser.PriceCandidate {
	var out []parser.PriceCandidate
	if a.Info != nil {
		out = append(out, a.Info.Candidates...)
	}
	return append(out, a.Fallback...)
}

// Selection 여러 시도의 결과를 합친 최종 선택
type Selection struct {
	Title    *string
	Provider string
	Currency string
	Price    *int64

	// Candidates 모든 시도의 가격 후보 합집합
	Candidates []parser.PriceCandidate
}

// Select 기본 정책(PolicyMinimum)으로 결과를 합칩니다.
func Select(parts ...Attempt) Selection {
	return PolicyMinimum.Select(parts...)
}

// Select 상품명은 앞선 시도의 값을 우선하고, 가격은 정책에 따라 모든 후보 중에서 고릅니다.
func (p Policy) Select(parts ...Attempt) Selection {
	sel := Selection{Provider: parser.ProviderNone, Currency: parser.DefaultCurrency}

	for _, part := range parts {
		// 파싱 결과가 없는 시도도 보조 스캔 후보는 가격 선택에 참여한다.
		sel.Candidates = append(sel.Candidates, part.candidates()...)

		info := part.Info
		if info == nil {
			continue
		}
		if sel.Title == nil && info.Title != nil && *info.Title != "" {
			title := *info.Title
			sel.Title = &title
			sel.Provider = info.Provider
		}
		if sel.Currency == parser.DefaultCurrency && info.Currency != "" {
			sel.Currency = info.Currency
		}
	}

	pool := sel.Candidates
	if p == PolicyTrusted {
		pool = mostTrusted(pool)
	}
	if len(pool) > 0 {
		price := slices.MinFunc(pool, func(a, b parser.PriceCandidate) int {
			switch {
			case a.Value < b.Value:
				return -1
			case a.Value > b.Value:
				return 1
			}
			return 0
		}).Value
		sel.Price = &price
	}

	return sel
}

// trustTier 값이 클수록 신뢰도가 높은 출처
func trustTier(s parser.Source) int {
	switch s {
	case parser.SourceStructured:
		return 3
	case parser.SourceEmbeddedState:
		return 2
	case parser.SourceMeta:
		return 1
	default:
		return 0
	}
}

// mostTrusted 신뢰도가 가장 높은 등급의 후보만 남깁니다.
func mostTrusted(candidates []parser.PriceCandidate) []parser.PriceCandidate {
	best := -1
	for _, c := range candidates {
		best = max(best, trustTier(c.Source))
	}

	var out []parser.PriceCandidate
	for _, c := range candidates {
		if trustTier(c.Source) == best {
			out = append(out, c)
		}
	}
	return out
}

// debugPrices 중복을 제거하고 오름차순으로 정렬한 뒤 앞에서부터 최대 20개를 반환합니다.
func debugPrices(candidates []parser.PriceCandidate) []int64 {
	values := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		values = append(values, c.Value)
	}
	slices.Sort(values)
	values = slices.Compact(values)
	if len(values) > maxDebugCandidates {
		values = values[:maxDebugCandidates]
	}
	return values
}
