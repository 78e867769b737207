package ladder

import (
	"time"

	"github.com/iancoleman/strcase"
	"github.com/koreahan/coupang/internal/config"
	"github.com/koreahan/coupang/internal/service/extractor/provider"
)

// Strategy 사다리의 한 단계에서 사용할 요청 조합
type Strategy struct {
	Name     string
	Render   bool
	Device   provider.Device
	Proxy    provider.ProxyTier
	Timeout  time.Duration
	Provider provider.Name
}

// DefaultEscalationTimeout 재시도(escalation) 전략의 기본 타임아웃
const DefaultEscalationTimeout = 15 * time.Second

// DefaultStrategies 비용이 낮고 빠른 정적 요청부터 렌더링, 프리미엄 프록시, 직접 요청 순으로 시도합니다.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "static-desktop", Device: provider.DeviceDesktop, Proxy: provider.ProxyStandard, Timeout: 2500 * time.Millisecond, Provider: provider.NameScrapingBee},
		{Name: "static-mobile", Device: provider.DeviceMobile, Proxy: provider.ProxyStandard, Timeout: 2500 * time.Millisecond, Provider: provider.NameScrapingBee},
		{Name: "rendered-desktop", Render: true, Device: provider.DeviceDesktop, Proxy: provider.ProxyStandard, Timeout: 6500 * time.Millisecond, Provider: provider.NameScrapingBee},
		{Name: "rendered-mobile-premium", Render: true, Device: provider.DeviceMobile, Proxy: provider.ProxyPremium, Timeout: 6500 * time.Millisecond, Provider: provider.NameScrapingBee},
		{Name: "direct", Device: provider.DeviceMobile, Proxy: provider.ProxyStandard, Timeout: 3 * time.Second, Provider: provider.NameDirect},
	}
}

// EscalationStrategy 제목이나 가격이 빠졌을 때 한 번 더 시도하는 렌더링 + 프리미엄 프록시 전략
func EscalationStrategy(timeout time.Duration) Strategy {
	if timeout <= 0 {
		timeout = DefaultEscalationTimeout
	}
	return Strategy{
		Name:     "escalation-rendered-premium",
		Render:   true,
		Device:   provider.DeviceDesktop,
		Proxy:    provider.ProxyPremium,
		Timeout:  timeout,
		Provider: provider.NameScrapingBee,
	}
}

// StrategiesFromConfig 설정 파일의 전략 목록을 변환합니다. 목록이 비어 있으면 DefaultStrategies를 사용합니다.
// 전략 이름은 로그와 응답에서 일관되게 보이도록 kebab-case로 바꿉니다.
func StrategiesFromConfig(cfgs []config.StrategyConfig) []Strategy {
	if len(cfgs) == 0 {
		return DefaultStrategies()
	}

	strategies := make([]Strategy, 0, len(cfgs))
	for _, c := range cfgs {
		strategies = append(strategies, Strategy{
			Name:     strcase.ToKebab(c.Name),
			Render:   c.Render,
			Device:   provider.Device(c.Device),
			Proxy:    provider.ProxyTier(c.Proxy),
			Timeout:  c.Timeout,
			Provider: provider.Name(c.Provider),
		})
	}
	return strategies
}

func (s Strategy) request(targetURL string) provider.Request {
	return provider.Request{
		TargetURL: targetURL,
		Render:    s.Render,
		Device:    s.Device,
		Proxy:     s.Proxy,
	}
}
