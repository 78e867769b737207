// Package extractor 상품 URL 하나에 대해 정규화, 페이지 수집, 파싱, 선택을 차례로 수행하여
// 상품명과 최저가를 돌려줍니다.
package extractor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/koreahan/coupang/internal/pkg/mark"
	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/extractor/ladder"
	"github.com/koreahan/coupang/internal/service/extractor/parser"
	"github.com/koreahan/coupang/internal/service/extractor/urlnorm"
	applog "github.com/koreahan/coupang/pkg/log"
)

const component = "extractor"

// DefaultBudget 요청 하나에 허용하는 기본 시간 예산
const DefaultBudget = 9 * time.Second

// URLNormalizer 입력 URL을 정규화합니다.
type URLNormalizer interface {
	Normalize(ctx context.Context, raw string) (*urlnorm.NormalizedURL, error)
}

// PageFetcher 전략 사다리
type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string, budget *ladder.Budget) (*ladder.Page, error)
	FetchOne(ctx context.Context, targetURL string, budget *ladder.Budget, s ladder.Strategy) (*ladder.Page, error)
}

// Result 추출 결과
type Result struct {
	FinalURL  string
	Title     *string
	Price     *int64
	Currency  string
	Provider  string
	Strategy  string
	Escalated bool

	// Candidates 중복 제거 후 오름차순으로 정렬한 가격 후보 (최대 20개)
	Candidates []int64

	Elapsed time.Duration
}

// Extractor 상품 정보 추출기
type Extractor struct {
	normalizer URLNormalizer
	ladder     PageFetcher
	parser     *parser.Parser

	budget     time.Duration
	policy     Policy
	escalate   bool
	escalation ladder.Strategy

	notifier            alert.Notifier
	exhaustionThreshold int32
	consecutiveFailures atomic.Int32
}

// New normalizer나 fetcher가 nil이면 패닉이 발생합니다.
func New(normalizer URLNormalizer, fetcher PageFetcher, opts ...Option) *Extractor {
	if normalizer == nil {
		panic("URLNormalizer는 필수입니다")
	}
	if fetcher == nil {
		panic("PageFetcher는 필수입니다")
	}

	e := &Extractor{
		normalizer: normalizer,
		ladder:     fetcher,
		parser:     parser.New(),
		budget:     DefaultBudget,
		policy:     PolicyMinimum,
		escalate:   true,
		escalation: ladder.EscalationStrategy(ladder.DefaultEscalationTimeout),
		notifier:   alert.Noop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract rawURL의 상품명과 가격을 추출합니다.
//
// 정규화 이후 단계에서 실패하면 FinalURL이 채워진 Result를 오류와 함께 반환합니다.
// 상품명만 찾고 가격을 찾지 못한 경우는 성공이며 Price가 nil입니다.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*Result, error) {
	start := time.Now()

	norm, err := e.normalizer.Normalize(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	res := &Result{
		FinalURL: norm.URL,
		Currency: parser.DefaultCurrency,
		Provider: parser.ProviderNone,
	}

	budget := ladder.NewBudget(start, e.budget).Clamp(ctx.Deadline())

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"url":        norm.URL,
		"product_id": norm.ProductID,
		"budget_ms":  budget.Remaining().Milliseconds(),
	})

	page, err := e.ladder.Fetch(ctx, norm.URL, budget)
	if err != nil {
		res.Elapsed = time.Since(start)
		e.recordExhaustion(err, norm.URL)
		return res, err
	}
	e.consecutiveFailures.Store(0)

	parts := []Attempt{e.analyze(page)}
	sel := e.policy.Select(parts...)
	res.Strategy = page.Strategy

	if e.shouldEscalate(sel, page) {
		escalated, err := e.ladder.FetchOne(ctx, norm.URL, budget, e.escalation)
		if err != nil {
			logger.WithError(err).Warn("추가 추출 시도에 실패하여 첫 페이지 결과만 사용합니다")
		} else {
			parts = append(parts, e.analyze(escalated))
			sel = e.policy.Select(parts...)
			res.Escalated = true
			res.Strategy = page.Strategy + "+" + escalated.Strategy
		}
	}

	res.Elapsed = time.Since(start)
	res.Title = sel.Title
	res.Price = sel.Price
	res.Currency = sel.Currency
	res.Provider = sel.Provider
	res.Candidates = debugPrices(sel.Candidates)

	if sel.Title == nil && sel.Price == nil {
		logger.WithField("strategy", res.Strategy).Warn("페이지에서 상품명과 가격을 찾지 못했습니다")
		return res, failure.New(failure.NoDataExtracted, "페이지에서 상품명과 가격을 찾지 못했습니다")
	}

	var price any
	if res.Price != nil {
		price = *res.Price
	}
	logger.WithFields(applog.Fields{
		"strategy":   res.Strategy,
		"escalated":  res.Escalated,
		"provider":   res.Provider,
		"price":      price,
		"candidates": len(sel.Candidates),
		"elapsed_ms": res.Elapsed.Milliseconds(),
	}).Info("상품 정보 추출 완료")

	return res, nil
}

func (e *Extractor) analyze(page *ladder.Page) Attempt {
	return Attempt{
		Strategy: page.Strategy,
		Info:     e.parser.Parse(page.HTML),
		Fallback: e.parser.FallbackScan(page.HTML),
	}
}

func (e *Extractor) shouldEscalate(sel Selection, page *ladder.Page) bool {
	if !e.escalate || page.Strategy == e.escalation.Name {
		return false
	}
	return sel.Title == nil || sel.Price == nil
}

// recordExhaustion 모든 전략 실패가 연속으로 임계값에 도달하면 한 번 알립니다. 성공하면 카운터가 초기화됩니다.
func (e *Extractor) recordExhaustion(err error, targetURL string) {
	if !failure.Is(err, failure.AllStrategiesExhausted) || e.exhaustionThreshold <= 0 {
		return
	}

	if n := e.consecutiveFailures.Add(1); n == e.exhaustionThreshold {
		applog.WithComponentAndFields(component, applog.Fields{
			"consecutive": n,
			"url":         targetURL,
		}).Error("상품 페이지 수집 실패가 연속으로 발생하고 있습니다")

		e.notifier.Notify(mark.Blocked.Prefix(fmt.Sprintf("[coupang-info] 상품 페이지 수집이 %d회 연속 실패했습니다\n마지막 URL: %s\n%s", n, targetURL, err)))
	}
}
