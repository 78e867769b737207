// Package monitor 스크래핑 프로바이더의 크레딧 잔량을 주기적으로 확인합니다.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/koreahan/coupang/internal/pkg/mark"
	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/extractor/provider"
	"github.com/koreahan/coupang/pkg/cronx"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/robfig/cron/v3"
)

const component = "monitor"

// checkTimeout 사용량 조회 한 번에 허용되는 최대 시간
const checkTimeout = 10 * time.Second

// UsageReader 크레딧 사용량 조회 인터페이스 (provider.ScrapingBee가 구현)
type UsageReader interface {
	Usage(ctx context.Context) (*provider.Usage, error)
}

// Snapshot 마지막 조회 결과
type Snapshot struct {
	Remaining int       `json:"remaining"`
	Max       int       `json:"max"`
	CheckedAt time.Time `json:"checked_at"`
	Low       bool      `json:"low"`
	Error     string    `json:"error,omitempty"`
}

// Monitor Cron 스케줄에 맞춰 크레딧 잔량을 조회하고, 기준치 미만이면 운영자에게 알립니다.
type Monitor struct {
	reader       UsageReader
	notifier     alert.Notifier
	schedule     string
	minRemaining int

	snapshot atomic.Pointer[Snapshot]

	// lowNotified 잔량 부족 알림을 이미 보냈는지 여부. 잔량이 회복되면 초기화된다.
	lowNotified atomic.Bool

	cron      *cron.Cron
	running   bool
	runningMu sync.Mutex
}

// New 새로운 Monitor를 생성합니다.
func New(reader UsageReader, notifier alert.Notifier, schedule string, minRemaining int) *Monitor {
	if reader == nil {
		panic("UsageReader는 필수입니다")
	}
	if notifier == nil {
		notifier = alert.Noop{}
	}

	return &Monitor{
		reader:       reader,
		notifier:     notifier,
		schedule:     schedule,
		minRemaining: minRemaining,
	}
}

// Start Cron 엔진을 시작합니다. ctx가 취소되면 Stop을 호출하고 wg.Done()을 알립니다.
func (m *Monitor) Start(ctx context.Context, wg *sync.WaitGroup) error {
	m.runningMu.Lock()
	defer m.runningMu.Unlock()

	if m.running {
		wg.Done()
		applog.WithComponent(component).Warn("Monitor가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	c := cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)
	if _, err := c.AddFunc(m.schedule, func() { m.Check(context.Background()) }); err != nil {
		wg.Done()
		return fmt.Errorf("잘못된 모니터 스케줄입니다 (schedule: %s): %w", m.schedule, err)
	}

	c.Start()
	m.cron = c
	m.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"schedule":             m.schedule,
		"min_remaining_credit": m.minRemaining,
	}).Info("크레딧 모니터를 시작했습니다")

	go func() {
		defer wg.Done()

		<-ctx.Done()

		m.Stop()
	}()

	return nil
}

// Stop 실행 중인 조회가 끝날 때까지 기다린 뒤 Cron 엔진을 중지합니다.
func (m *Monitor) Stop() {
	m.runningMu.Lock()
	defer m.runningMu.Unlock()

	if !m.running {
		return
	}

	<-m.cron.Stop().Done()
	m.cron = nil
	m.running = false

	applog.WithComponent(component).Info("크레딧 모니터를 중지했습니다")
}

// Snapshot 마지막 조회 결과를 반환합니다. 아직 조회하지 않았다면 nil입니다.
func (m *Monitor) Snapshot() *Snapshot {
	return m.snapshot.Load()
}

// Check 사용량을 한 번 조회하고 스냅샷을 갱신합니다.
func (m *Monitor) Check(ctx context.Context) *Snapshot {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	snap := &Snapshot{CheckedAt: time.Now()}

	usage, err := m.reader.Usage(ctx)
	if err != nil {
		snap.Error = err.Error()
		if prev := m.snapshot.Load(); prev != nil {
			snap.Remaining, snap.Max, snap.Low = prev.Remaining, prev.Max, prev.Low
		}
		m.snapshot.Store(snap)

		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Warn("크레딧 사용량 조회에 실패했습니다")
		return snap
	}

	snap.Remaining = usage.Remaining()
	snap.Max = usage.MaxAPICredit
	snap.Low = snap.Remaining < m.minRemaining
	m.snapshot.Store(snap)

	fields := applog.Fields{
		"remaining": snap.Remaining,
		"max":       snap.Max,
		"threshold": m.minRemaining,
	}

	if !snap.Low {
		m.lowNotified.Store(false)
		applog.WithComponentAndFields(component, fields).Debug("크레딧 잔량 확인 완료")
		return snap
	}

	applog.WithComponentAndFields(component, fields).Warn("크레딧 잔량이 기준치 미만입니다")
	if m.lowNotified.CompareAndSwap(false, true) {
		m.notifier.Notify(mark.Warning.Prefix(fmt.Sprintf("스크래핑 크레딧 잔량 부족: %d / %d (기준 %d)", snap.Remaining, snap.Max, m.minRemaining)))
	}
	return snap
}
