package extractor

import (
	"time"

	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/extractor/ladder"
	"github.com/koreahan/coupang/internal/service/extractor/parser"
)

// Option Extractor 설정 옵션
type Option func(*Extractor)

// WithBudget 요청 하나의 전체 시간 예산. 0 이하는 무시됩니다.
func WithBudget(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.budget = d
		}
	}
}

// WithPolicy 알 수 없는 정책이면 PolicyMinimum을 사용합니다.
func WithPolicy(p Policy) Option {
	return func(e *Extractor) {
		switch p {
		case PolicyMinimum, PolicyTrusted:
			e.policy = p
		default:
			e.policy = PolicyMinimum
		}
	}
}

// WithParser 가격 상한 등을 바꾼 Parser를 사용합니다.
func WithParser(p *parser.Parser) Option {
	return func(e *Extractor) {
		if p != nil {
			e.parser = p
		}
	}
}

// WithEscalation 첫 페이지에서 상품명이나 가격을 찾지 못했을 때 strategy로 한 번 더 시도합니다.
func WithEscalation(enabled bool, strategy ladder.Strategy) Option {
	return func(e *Extractor) {
		e.escalate = enabled
		e.escalation = strategy
	}
}

// WithExhaustionAlert 모든 전략 실패가 threshold번 연속되면 n으로 알림을 보냅니다.
func WithExhaustionAlert(n alert.Notifier, threshold int) Option {
	return func(e *Extractor) {
		if n != nil && threshold > 0 {
			e.notifier = n
			e.exhaustionThreshold = int32(threshold)
		}
	}
}
