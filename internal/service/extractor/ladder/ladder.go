// Package ladder 상품 페이지를 가져오기 위해 여러 전략을 정해진 순서대로 시도합니다.
//
// 각 단계는 남은 시간 예산 안에서만 실행되며, 첫 번째로 검증을 통과한 페이지를 반환합니다.
// 모든 단계가 실패하면 단계별 실패 사유를 담은 AllStrategiesExhausted 실패를 반환합니다.
package ladder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/extractor/provider"
	"github.com/koreahan/coupang/internal/service/fetcher"
	applog "github.com/koreahan/coupang/pkg/log"
)

const component = "extractor.ladder"

const (
	DefaultMinViable    = 500 * time.Millisecond
	DefaultSafetyMargin = 250 * time.Millisecond
)

// 실패 종류 외에 단계 결과를 나타내는 값
const (
	KindSkipped       = "Skipped"
	KindTimeout       = "Timeout"
	KindUpstreamError = "UpstreamError"
)

// Page 검증을 통과한 페이지
type Page struct {
	HTML       string
	Strategy   string
	Provider   provider.Name
	StatusCode int
	Elapsed    time.Duration
	FinalURL   string
}

// AttemptFailure 실패하거나 건너뛴 단계 하나의 기록
type AttemptFailure struct {
	Strategy string
	Kind     string
	Message  string
}

func (a AttemptFailure) String() string {
	return fmt.Sprintf("%s: %s (%s)", a.Strategy, a.Kind, a.Message)
}

// ExhaustedError 모든 단계가 실패했을 때의 오류. failure.KindOf로 AllStrategiesExhausted를 꺼낼 수 있습니다.
type ExhaustedError struct {
	Attempts []AttemptFailure

	err *failure.Error
}

func newExhaustedError(attempts []AttemptFailure) *ExhaustedError {
	reasons := make([]string, 0, len(attempts))
	for _, a := range attempts {
		reasons = append(reasons, a.String())
	}
	return &ExhaustedError{
		Attempts: attempts,
		err:      failure.New(failure.AllStrategiesExhausted, "모든 추출 전략이 실패했습니다", reasons...),
	}
}

func (e *ExhaustedError) Error() string { return e.err.Error() }
func (e *ExhaustedError) Unwrap() error { return e.err }

// Reason 응답의 reason 필드에 사용되는 설명
func (e *ExhaustedError) Reason() string { return e.err.Reason() }

// Config Ladder 설정
type Config struct {
	// Strategies 비어 있으면 DefaultStrategies를 사용합니다.
	Strategies []Strategy

	MinViable    time.Duration
	SafetyMargin time.Duration

	// MinBodyBytes 0이면 본문 길이를 검사하지 않고, 음수이면 DefaultMinBodyBytes를 사용합니다.
	MinBodyBytes int
}

// Ladder 전략 사다리
type Ladder struct {
	providers  provider.Registry
	strategies []Strategy

	minViable    time.Duration
	safetyMargin time.Duration
	validator    Validator
}

// New providers가 비어 있으면 패닉이 발생합니다.
func New(providers provider.Registry, cfg Config) *Ladder {
	if len(providers) == 0 {
		panic("프로바이더가 하나 이상 필요합니다")
	}

	l := &Ladder{
		providers:    providers,
		strategies:   cfg.Strategies,
		minViable:    cfg.MinViable,
		safetyMargin: cfg.SafetyMargin,
		validator:    Validator{MinBodyBytes: cfg.MinBodyBytes},
	}
	if len(l.strategies) == 0 {
		l.strategies = DefaultStrategies()
	}
	if l.minViable <= 0 {
		l.minViable = DefaultMinViable
	}
	if l.safetyMargin < 0 {
		l.safetyMargin = DefaultSafetyMargin
	}
	if l.validator.MinBodyBytes < 0 {
		l.validator.MinBodyBytes = DefaultMinBodyBytes
	}
	return l
}

// Strategies 사다리를 구성하는 전략 목록의 사본
func (l *Ladder) Strategies() []Strategy {
	return append([]Strategy(nil), l.strategies...)
}

// Fetch 전략을 순서대로 시도하여 첫 번째로 검증을 통과한 페이지를 반환합니다.
// 남은 예산이 min_viable보다 적은 단계는 건너뛰고, 건너뛴 사실도 실패 목록에 남깁니다.
func (l *Ladder) Fetch(ctx context.Context, targetURL string, budget *Budget) (*Page, error) {
	attempts := make([]AttemptFailure, 0, len(l.strategies))

	for _, s := range l.strategies {
		if ctx.Err() != nil {
			attempts = append(attempts, AttemptFailure{Strategy: s.Name, Kind: KindSkipped, Message: "요청이 취소되었습니다"})
			continue
		}
		if remaining := budget.Remaining(); remaining < l.minViable {
			attempts = append(attempts, AttemptFailure{Strategy: s.Name, Kind: KindSkipped, Message: fmt.Sprintf("남은 시간 예산 부족 (%s)", remaining.Round(time.Millisecond))})
			continue
		}

		page, err := l.attempt(ctx, targetURL, budget, s)
		if err == nil {
			return page, nil
		}
		attempts = append(attempts, describe(s, err))
	}

	exhausted := newExhaustedError(attempts)

	applog.WithComponentAndFields(component, applog.Fields{
		"url":        fetcher.RedactURL(targetURL),
		"attempts":   len(attempts),
		"elapsed_ms": budget.Elapsed().Milliseconds(),
		"reason":     exhausted.Reason(),
	}).Warn("모든 추출 전략이 실패했습니다")

	return nil, exhausted
}

// FetchOne 전략 하나만 같은 검증 규칙으로 시도합니다.
func (l *Ladder) FetchOne(ctx context.Context, targetURL string, budget *Budget, s Strategy) (*Page, error) {
	if remaining := budget.Remaining(); remaining < l.minViable {
		return nil, failure.New(failure.AllStrategiesExhausted, "남은 시간 예산이 부족합니다", fmt.Sprintf("%s: %s", s.Name, remaining.Round(time.Millisecond)))
	}
	return l.attempt(ctx, targetURL, budget, s)
}

func (l *Ladder) attempt(ctx context.Context, targetURL string, budget *Budget, s Strategy) (*Page, error) {
	logger := applog.WithComponentAndFields(component, applog.Fields{
		"strategy": s.Name,
		"provider": s.Provider,
		"url":      fetcher.RedactURL(targetURL),
	})

	p, err := l.providers.Lookup(s.Provider)
	if err != nil {
		return nil, err
	}

	timeout := budget.AttemptTimeout(s.Timeout, l.safetyMargin)
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.Fetch(actx, s.request(targetURL))
	elapsed := time.Since(start)

	if err == nil {
		err = l.validator.Validate(resp.HTML)
	}
	if err != nil {
		err = classify(err)
		logger.WithFields(applog.Fields{
			"timeout_ms":   timeout.Milliseconds(),
			"elapsed_ms":   elapsed.Milliseconds(),
			"remaining_ms": budget.Remaining().Milliseconds(),
			"error":        err,
		}).Warn("추출 전략 실패, 다음 단계로 넘어갑니다")
		return nil, err
	}

	logger.WithFields(applog.Fields{
		"elapsed_ms": elapsed.Milliseconds(),
		"bytes":      resp.RawSize,
	}).Info("추출 전략 성공")

	return &Page{
		HTML:       resp.HTML,
		Strategy:   s.Name,
		Provider:   p.Name(),
		StatusCode: resp.StatusCode,
		Elapsed:    elapsed,
		FinalURL:   resp.FinalURL,
	}, nil
}

// classify 재시도 후에도 남은 429 응답을 UpstreamRateLimited로 바꿉니다.
func classify(err error) error {
	var statusErr *fetcher.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
		return failure.Wrap(err, failure.UpstreamRateLimited, "스크래핑 프로바이더 요청 한도를 초과했습니다 (HTTP 429)")
	}
	return err
}

func describe(s Strategy, err error) AttemptFailure {
	a := AttemptFailure{Strategy: s.Name, Message: err.Error()}

	var fe *failure.Error
	switch {
	case errors.As(err, &fe):
		a.Kind = string(fe.Kind)
		a.Message = fe.Message
	case errors.Is(err, context.DeadlineExceeded) || apperrors.Is(err, apperrors.Timeout):
		a.Kind = KindTimeout
	default:
		a.Kind = KindUpstreamError
	}
	return a
}
