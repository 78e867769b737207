package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/httputil"
	appmiddleware "github.com/koreahan/coupang/internal/service/api/middleware"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록 (기본값: ["*"])
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간. 0이면 기본값(15초)을 사용합니다.
	// 추출 시간 예산은 이 제한 시간 안에서 계산됩니다.
	RequestTimeout time.Duration

	// RateLimitPerSecond, RateLimitBurst IP별 요청 제한. 0이면 기본값을 사용합니다.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

var (
	corsAllowMethods = []string{http.MethodPost, http.MethodOptions, http.MethodGet}
	corsAllowHeaders = []string{echo.HeaderContentType}
)

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어에서 발생한 panic도 복구하도록 가장 먼저 적용
//  2. RequestID - X-Request-ID 헤더 부여 (UUID). 로그에 request_id를 남기려면 로깅보다 앞에 있어야 함
//  3. Server 헤더 제거
//  4. HTTPLogger - api_key 등 민감 정보는 마스킹
//  5. RateLimiting - IP별 요청 제한 (초과 시 429)
//  6. BodyLimit - 요청 본문 64KB 제한 (초과 시 413)
//  7. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  8. Preflight - OPTIONS 요청에 본문 없는 200 응답
//  9. CORS
//  10. Secure - X-XSS-Protection, X-Content-Type-Options 등 보안 헤더
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그도 애플리케이션 로거와 같은 형식과 출력 대상을 사용한다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	perSecond := cfg.RateLimitPerSecond
	if perSecond <= 0 {
		perSecond = constants.DefaultRateLimitPerSecond
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}
	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(perSecond, burst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	e.Use(appmiddleware.Preflight(appmiddleware.PreflightConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: corsAllowMethods,
		AllowHeaders: corsAllowHeaders,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: corsAllowMethods,
		AllowHeaders: corsAllowHeaders,
	}))
	e.Use(middleware.Secure())

	return e
}
