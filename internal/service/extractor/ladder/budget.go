package ladder

import "time"

// Budget 요청 하나에 허용된 전체 시간. 시작 시각을 기준으로 남은 시간을 계산합니다.
type Budget struct {
	start time.Time
	total time.Duration

	now func() time.Time
}

// NewBudget start는 time.Now()로 얻은 값이어야 단조 시계가 사용됩니다.
func NewBudget(start time.Time, total time.Duration) *Budget {
	return &Budget{start: start, total: total, now: time.Now}
}

// Remaining 남은 시간. 예산을 모두 썼으면 0입니다.
func (b *Budget) Remaining() time.Duration {
	return max(b.total-b.Elapsed(), 0)
}

func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

// Deadline 예산이 끝나는 시각
func (b *Budget) Deadline() time.Time {
	return b.start.Add(b.total)
}

// AttemptTimeout 한 번의 시도에 줄 수 있는 시간. min(nominal, 남은 시간 - margin)이며 음수가 되지 않습니다.
func (b *Budget) AttemptTimeout(nominal, margin time.Duration) time.Duration {
	return max(min(nominal, b.Remaining()-margin), 0)
}

// Clamp deadline이 예산보다 이르면 예산을 그만큼 줄인 새 Budget을 반환합니다.
// 요청 Context의 기한과 설정된 예산 중 이른 쪽을 적용할 때 사용합니다.
func (b *Budget) Clamp(deadline time.Time, ok bool) *Budget {
	if !ok || !deadline.Before(b.Deadline()) {
		return b
	}
	return &Budget{start: b.start, total: deadline.Sub(b.start), now: b.now}
}
