package config

import "time"

const (
	DefaultListenPort     = 8080
	DefaultRequestTimeout = 15 * time.Second

	DefaultRateLimitPerSecond = 5
	DefaultRateLimitBurst     = 10

	DefaultScrapingBeeEndpoint   = "https://app.scrapingbee.com/api/v1"
	DefaultMaxConcurrentUpstream = 4
	DefaultScrapingMaxRetries    = 1
	DefaultScrapingRetryDelay    = 300 * time.Millisecond
	DefaultScrapingMaxRetryDelay = 1500 * time.Millisecond
	DefaultMinBodyBytes          = 2000
	DefaultExtractionBudget      = 9 * time.Second
	DefaultMinViable             = 500 * time.Millisecond
	DefaultSafetyMargin          = 250 * time.Millisecond
	DefaultEscalationTimeout     = 15 * time.Second
	DefaultMaxPrice              = 100_000_000
	DefaultSelectionPolicy       = "minimum"
	DefaultShortLinkHost         = "link.coupang.com"
	DefaultShortLinkMaxHops      = 5
	DefaultShortLinkTimeout      = 2 * time.Second
	DefaultAffiliateEndpoint     = "https://api-gateway.coupang.com"
	DefaultAffiliateTimeout      = 5 * time.Second
	DefaultTelegramEndpoint      = "https://api.telegram.org/bot%s/%s"
	DefaultExhaustionThreshold   = 5
	DefaultMonitorSchedule       = "0 */10 * * * *"
	DefaultMinRemainingCredit    = 1000
)

// newDefaultConfig koanf에 가장 먼저 적재되는 기본 설정입니다.
// 추출 전략 목록(extractor.strategies)은 비워 두며, 비어 있으면 내장 사다리를 사용합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		HTTPServer: HTTPServerConfig{
			ListenPort:     DefaultListenPort,
			RequestTimeout: DefaultRequestTimeout,
			AllowOrigins:   []string{"*"},
			RateLimit: RateLimitConfig{
				PerSecond: DefaultRateLimitPerSecond,
				Burst:     DefaultRateLimitBurst,
			},
		},
		Scraping: ScrapingConfig{
			ProviderEndpoint:      DefaultScrapingBeeEndpoint,
			MaxConcurrentUpstream: DefaultMaxConcurrentUpstream,
			MaxRetries:            DefaultScrapingMaxRetries,
			RetryDelay:            DefaultScrapingRetryDelay,
			MaxRetryDelay:         DefaultScrapingMaxRetryDelay,
			MinBodyBytes:          DefaultMinBodyBytes,
		},
		Extractor: ExtractorConfig{
			Budget:            DefaultExtractionBudget,
			MinViable:         DefaultMinViable,
			SafetyMargin:      DefaultSafetyMargin,
			Escalate:          true,
			EscalationTimeout: DefaultEscalationTimeout,
		},
		Parser:    ParserConfig{MaxPrice: DefaultMaxPrice},
		Selection: SelectionConfig{Policy: DefaultSelectionPolicy},
		Normalizer: NormalizerConfig{
			ShortLinkHosts: []string{DefaultShortLinkHost},
			MaxHops:        DefaultShortLinkMaxHops,
			Timeout:        DefaultShortLinkTimeout,
		},
		Affiliate: AffiliateConfig{
			Endpoint: DefaultAffiliateEndpoint,
			Timeout:  DefaultAffiliateTimeout,
		},
		Alert: AlertConfig{
			Telegram:            TelegramConfig{Endpoint: DefaultTelegramEndpoint},
			ExhaustionThreshold: DefaultExhaustionThreshold,
		},
		Monitor: MonitorConfig{
			Schedule:           DefaultMonitorSchedule,
			MinRemainingCredit: DefaultMinRemainingCredit,
		},
	}
}
