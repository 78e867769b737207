package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	HTTPServer HTTPServerConfig `json:"http_server"`
	Scraping   ScrapingConfig   `json:"scraping"`
	Extractor  ExtractorConfig  `json:"extractor"`
	Parser     ParserConfig     `json:"parser"`
	Selection  SelectionConfig  `json:"selection"`
	Normalizer NormalizerConfig `json:"normalizer"`
	Affiliate  AffiliateConfig  `json:"affiliate"`
	Alert      AlertConfig      `json:"alert"`
	Monitor    MonitorConfig    `json:"monitor"`
}

func (c *AppConfig) validate(v *validator.Validate) error {
	sections := []struct {
		name  string
		value any
	}{
		{"http_server", c.HTTPServer},
		{"scraping", c.Scraping},
		{"extractor", c.Extractor},
		{"parser", c.Parser},
		{"selection", c.Selection},
		{"normalizer", c.Normalizer},
		{"affiliate", c.Affiliate},
		{"alert", c.Alert},
		{"monitor", c.Monitor},
	}
	for _, s := range sections {
		if err := checkStruct(v, s.value, s.name); err != nil {
			return err
		}
	}

	if err := c.HTTPServer.validateOrigins(); err != nil {
		return err
	}
	if err := c.Extractor.validateTimings(); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 서비스 구동은 가능하지만 운영상 주의가 필요한 설정에 대한 경고 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTPServer.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 관리자 권한이 필요할 수 있습니다", c.HTTPServer.ListenPort))
	}
	if c.Scraping.APIKey == "" {
		warnings = append(warnings, "스크래핑 API 키(scraping.api_key)가 설정되지 않았습니다. direct 전략만 동작합니다")
	}
	if !c.Affiliate.Configured() {
		warnings = append(warnings, "제휴 API 키(affiliate.access_key/secret_key/sub_id)가 모두 설정되지 않아 딥링크 생성이 비활성화됩니다")
	}
	if c.Monitor.Enabled && c.Scraping.APIKey == "" {
		warnings = append(warnings, "모니터가 활성화되었지만 스크래핑 API 키가 없어 사용량을 조회할 수 없습니다")
	}

	return warnings
}

// HTTPServerConfig API 서버 설정
type HTTPServerConfig struct {
	ListenPort     int             `json:"listen_port" validate:"min=1,max=65535"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"gt=0"`
	AllowOrigins   []string        `json:"allow_origins" validate:"min=1,dive,cors_origin"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig 클라이언트 IP별 요청 제한 설정
type RateLimitConfig struct {
	PerSecond float64 `json:"per_second" validate:"gt=0"`
	Burst     int     `json:"burst" validate:"min=1"`
}

func (c *HTTPServerConfig) validateOrigins() error {
	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}
	return nil
}

// ScrapingConfig 외부 스크래핑 프로바이더와 상위 요청 제어 설정
type ScrapingConfig struct {
	ProviderEndpoint      string        `json:"provider_endpoint" validate:"required,http_url"`
	APIKey                string        `json:"api_key"`
	PremiumDefault        bool          `json:"premium_default"`
	MaxConcurrentUpstream int           `json:"max_concurrent_upstream" validate:"min=1,max=64"`
	MaxRetries            int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay            time.Duration `json:"retry_delay" validate:"gt=0"`
	MaxRetryDelay         time.Duration `json:"max_retry_delay" validate:"gtefield=RetryDelay"`
	MinBodyBytes          int           `json:"min_body_bytes" validate:"min=0"`
}

// StrategyConfig 추출 사다리의 한 단계
type StrategyConfig struct {
	Name     string        `json:"name" validate:"required"`
	Render   bool          `json:"render"`
	Device   string        `json:"device" validate:"oneof=desktop mobile"`
	Proxy    string        `json:"proxy" validate:"oneof=standard premium"`
	Timeout  time.Duration `json:"timeout" validate:"gt=0"`
	Provider string        `json:"provider" validate:"oneof=scrapingbee direct"`
}

// ExtractorConfig 시간 예산과 전략 사다리 설정
type ExtractorConfig struct {
	Budget            time.Duration    `json:"budget" validate:"gt=0"`
	MinViable         time.Duration    `json:"min_viable" validate:"gt=0"`
	SafetyMargin      time.Duration    `json:"safety_margin" validate:"gte=0"`
	Escalate          bool             `json:"escalate"`
	EscalationTimeout time.Duration    `json:"escalation_timeout" validate:"gt=0"`
	Strategies        []StrategyConfig `json:"strategies" validate:"dive"`
}

func (c *ExtractorConfig) validateTimings() error {
	if c.MinViable+c.SafetyMargin >= c.Budget {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("추출 예산(extractor.budget=%s)은 min_viable(%s)과 safety_margin(%s)의 합보다 커야 합니다", c.Budget, c.MinViable, c.SafetyMargin))
	}

	seen := make(map[string]struct{}, len(c.Strategies))
	for _, s := range c.Strategies {
		if _, dup := seen[s.Name]; dup {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("중복된 전략 이름이 존재합니다: '%s'", s.Name))
		}
		seen[s.Name] = struct{}{}

		if s.Provider == "direct" && s.Render {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("direct 전략은 렌더링을 지원하지 않습니다: '%s'", s.Name))
		}
	}
	return nil
}

// ParserConfig 가격 정규화 설정
type ParserConfig struct {
	MaxPrice int64 `json:"max_price" validate:"min=1"`
}

// SelectionConfig 가격 후보 선택 정책
type SelectionConfig struct {
	Policy string `json:"policy" validate:"oneof=minimum trusted"`
}

// NormalizerConfig 단축 링크 해석 설정
type NormalizerConfig struct {
	ShortLinkHosts []string      `json:"short_link_hosts" validate:"min=1,dive,hostname"`
	MaxHops        int           `json:"max_hops" validate:"min=1,max=10"`
	Timeout        time.Duration `json:"timeout" validate:"gt=0"`
}

// AffiliateConfig 쿠팡 파트너스 Open API 설정
type AffiliateConfig struct {
	Endpoint  string        `json:"endpoint" validate:"required,http_url"`
	AccessKey string        `json:"access_key"`
	SecretKey string        `json:"secret_key"`
	SubID     string        `json:"sub_id"`
	Timeout   time.Duration `json:"timeout" validate:"gt=0"`
}

// Configured 딥링크 생성에 필요한 키가 모두 설정되었는지 여부를 반환합니다.
func (c AffiliateConfig) Configured() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.SubID != ""
}

// AlertConfig 운영 알림 설정
type AlertConfig struct {
	Telegram            TelegramConfig `json:"telegram"`
	ExhaustionThreshold int            `json:"exhaustion_threshold" validate:"min=1"`
}

// TelegramConfig 텔레그램 봇 설정
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
	Endpoint string `json:"endpoint" validate:"required"`
}

// MonitorConfig 스크래핑 프로바이더 사용량 모니터 설정
type MonitorConfig struct {
	Enabled            bool   `json:"enabled"`
	Schedule           string `json:"schedule" validate:"cron_spec"`
	MinRemainingCredit int    `json:"min_remaining_credit" validate:"min=0"`
}
