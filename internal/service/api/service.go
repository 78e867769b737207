// Package api 상품 정보 추출 HTTP API 서버를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	_ "github.com/koreahan/coupang/docs"
	"github.com/koreahan/coupang/internal/config"
	"github.com/koreahan/coupang/internal/pkg/mark"
	"github.com/koreahan/coupang/internal/pkg/version"
	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/handler/system"
	v1 "github.com/koreahan/coupang/internal/service/api/v1"
	v1handler "github.com/koreahan/coupang/internal/service/api/v1/handler"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// shutdownTimeout Graceful Shutdown 시 최대 대기 시간
const shutdownTimeout = 5 * time.Second

// Dependencies API 핸들러가 사용하는 서비스 목록입니다.
type Dependencies struct {
	Extractor  v1handler.ProductExtractor
	Normalizer v1handler.URLNormalizer
	Deeplinks  v1handler.DeeplinkCreator

	// Scraping 스크래핑 프로바이더 API 키 설정 여부 (헬스체크용)
	Scraping system.ConfigChecker

	// Usage 크레딧 모니터. 비활성화되어 있으면 nil
	Usage system.UsageSnapshotter

	// Notifier HTTP 서버가 예기치 않게 종료되면 알림을 보냅니다. nil이면 알림을 보내지 않습니다.
	Notifier alert.Notifier
}

// Service API 서버의 생명주기를 관리하는 서비스입니다.
//
// Start()로 시작하면 별도 고루틴에서 HTTP 서버가 실행되며, context 취소 시 Graceful Shutdown을 수행합니다.
type Service struct {
	appConfig *config.AppConfig
	deps      Dependencies
	buildInfo version.Info

	// listener 테스트에서 임의 포트를 사용하기 위해 주입합니다. nil이면 설정된 포트로 리슨합니다.
	listener net.Listener

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, deps Dependencies, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic(constants.PanicMsgAppConfigRequired)
	}
	if deps.Notifier == nil {
		deps.Notifier = alert.Noop{}
	}

	return &Service{
		appConfig: appConfig,
		deps:      deps,
		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
//
// serviceStopCtx가 취소되면 서버를 종료하고 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	// 핸들러 생성자가 의존성 누락 시 패닉을 일으키므로 고루틴 밖에서 먼저 구성한다.
	e := s.setupServer()

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG, e)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup, e *echo.Echo) {
	defer serviceStopWG.Done()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.NewHandler(s.deps.Scraping, s.deps.Deeplinks, s.deps.Usage, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.deps.Extractor, s.deps.Normalizer, s.deps.Deeplinks)

	srv := s.appConfig.HTTPServer
	e := NewHTTPServer(HTTPServerConfig{
		Debug:              s.appConfig.Debug,
		AllowOrigins:       srv.AllowOrigins,
		RequestTimeout:     srv.RequestTimeout,
		RateLimitPerSecond: srv.RateLimit.PerSecond,
		RateLimitBurst:     srv.RateLimit.Burst,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler, systemHandler)

	return e
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.HTTPServer.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if s.listener != nil {
		e.Listener = s.listener
		err = e.Start("")
	} else {
		err = e.Start(net.JoinHostPort("", strconv.Itoa(port)))
	}

	s.handleServerError(err)
}

// handleServerError http.ErrServerClosed는 정상 종료이며, 그 외의 에러는 로깅하고 운영자에게 알립니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	message := constants.LogMsgServiceHTTPServerFatalError
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.HTTPServer.ListenPort,
		"error": err,
	}).Error(message)

	s.deps.Notifier.Notify(mark.Alert.Prefix(fmt.Sprintf("%s\r\n\r\n%s", message, err)))
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
// HTTP 서버가 먼저 종료되었다면(포트 바인딩 실패 등) Shutdown 없이 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}
