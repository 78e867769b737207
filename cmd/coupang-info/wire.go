package main

import (
	"time"

	"github.com/koreahan/coupang/internal/config"
	"github.com/koreahan/coupang/internal/pkg/version"
	"github.com/koreahan/coupang/internal/service"
	"github.com/koreahan/coupang/internal/service/affiliate"
	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/api"
	"github.com/koreahan/coupang/internal/service/api/handler/system"
	"github.com/koreahan/coupang/internal/service/extractor"
	"github.com/koreahan/coupang/internal/service/extractor/ladder"
	"github.com/koreahan/coupang/internal/service/extractor/parser"
	"github.com/koreahan/coupang/internal/service/extractor/provider"
	"github.com/koreahan/coupang/internal/service/extractor/urlnorm"
	"github.com/koreahan/coupang/internal/service/fetcher"
	"github.com/koreahan/coupang/internal/service/monitor"
	"github.com/koreahan/coupang/internal/service/scraper"
	"golang.org/x/sync/semaphore"
)

// directFetchTimeout 프로바이더를 거치지 않는 직접 요청의 전송 타임아웃. 실제 제한은 전략별 타임아웃이 적용된다.
const directFetchTimeout = 10 * time.Second

// application 설정으로부터 조립된 서비스 묶음
type application struct {
	notifier alert.Notifier

	// services 시작 순서대로 정렬되어 있다. 알림 발송기가 가장 먼저, API 서버가 가장 나중에 시작된다.
	services []service.Service
}

// buildApplication 설정에 따라 추출 파이프라인과 부가 서비스를 생성하고 서로 연결합니다.
func buildApplication(appConfig *config.AppConfig, buildInfo version.Info) (*application, error) {
	app := &application{notifier: alert.Noop{}}

	tg := appConfig.Alert.Telegram
	if tg.Enabled {
		telegram, err := alert.NewTelegram(tg.BotToken, tg.ChatID, tg.Endpoint)
		if err != nil {
			return nil, err
		}
		app.notifier = telegram
		app.services = append(app.services, telegram)
	}

	// ScrapingBee와 쿠팡 직접 요청은 하나의 세마포어로 동시 요청 수를 제한한다.
	sc := appConfig.Scraping
	limiter := semaphore.NewWeighted(int64(sc.MaxConcurrentUpstream))
	providerFetcher := fetcher.NewFromConfig(fetcher.Config{
		MaxRetries:    sc.MaxRetries,
		MinRetryDelay: sc.RetryDelay,
		MaxRetryDelay: sc.MaxRetryDelay,
		Limiter:       limiter,
	})
	directFetcher := fetcher.NewFromConfig(fetcher.Config{
		Timeout:    directFetchTimeout,
		MaxRetries: 0,
		Limiter:    limiter,
	})

	noRedirects := 0
	shortLinkFetcher := fetcher.NewFromConfig(fetcher.Config{
		Timeout:                     appConfig.Normalizer.Timeout,
		MaxRedirects:                &noRedirects,
		DisableStatusCodeValidation: true,
		MaxRetries:                  0,
	})

	normalizer := urlnorm.New(shortLinkFetcher, urlnorm.Config{
		ShortLinkHosts: appConfig.Normalizer.ShortLinkHosts,
		MaxHops:        appConfig.Normalizer.MaxHops,
		Timeout:        appConfig.Normalizer.Timeout,
	})

	scrapingBee := provider.NewScrapingBee(scraper.New(providerFetcher), sc.APIKey,
		provider.WithEndpoint(sc.ProviderEndpoint),
		provider.WithPremiumDefault(sc.PremiumDefault),
		provider.WithNotifier(app.notifier),
	)
	registry := provider.NewRegistry(scrapingBee, provider.NewDirect(scraper.New(directFetcher)))

	ex := appConfig.Extractor
	pageLadder := ladder.New(registry, ladder.Config{
		Strategies:   ladder.StrategiesFromConfig(ex.Strategies),
		MinViable:    ex.MinViable,
		SafetyMargin: ex.SafetyMargin,
		MinBodyBytes: sc.MinBodyBytes,
	})

	productExtractor := extractor.New(normalizer, pageLadder,
		extractor.WithBudget(ex.Budget),
		extractor.WithPolicy(extractor.Policy(appConfig.Selection.Policy)),
		extractor.WithParser(parser.New(parser.WithMaxPrice(appConfig.Parser.MaxPrice))),
		extractor.WithEscalation(ex.Escalate, ladder.EscalationStrategy(ex.EscalationTimeout)),
		extractor.WithExhaustionAlert(app.notifier, appConfig.Alert.ExhaustionThreshold),
	)

	af := appConfig.Affiliate
	affiliateFetcher := fetcher.NewFromConfig(fetcher.Config{
		Timeout:    af.Timeout,
		MaxRetries: 0,
	})
	deeplinks := affiliate.New(scraper.New(affiliateFetcher), affiliate.Config{
		Endpoint:  af.Endpoint,
		AccessKey: af.AccessKey,
		SecretKey: af.SecretKey,
		SubID:     af.SubID,
	})

	// 모니터가 꺼져 있으면 인터페이스 값 자체를 nil로 두어야 헬스체크가 사용량 항목을 생략한다.
	var usage system.UsageSnapshotter
	if appConfig.Monitor.Enabled && scrapingBee.Configured() {
		m := monitor.New(scrapingBee, app.notifier, appConfig.Monitor.Schedule, appConfig.Monitor.MinRemainingCredit)
		usage = m
		app.services = append(app.services, m)
	}

	apiService := api.NewService(appConfig, api.Dependencies{
		Extractor:  productExtractor,
		Normalizer: normalizer,
		Deeplinks:  deeplinks,
		Scraping:   scrapingBee,
		Usage:      usage,
		Notifier:   app.notifier,
	}, buildInfo)
	app.services = append(app.services, apiService)

	return app, nil
}
