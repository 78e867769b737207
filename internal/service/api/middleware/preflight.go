package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// PreflightConfig Preflight 응답에 포함할 CORS 헤더 설정
type PreflightConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
}

// Preflight OPTIONS 요청에 본문 없는 200 OK로 응답합니다.
//
// Echo의 CORS 미들웨어는 Preflight 요청에 204 No Content를 반환하지만, 기존 클라이언트는 200을 기대하므로
// CORS 미들웨어보다 앞에 두어 OPTIONS 요청을 먼저 처리합니다. 그 밖의 요청은 그대로 통과시킵니다.
func Preflight(cfg PreflightConfig) echo.MiddlewareFunc {
	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")

	wildcard := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodOptions {
				return next(c)
			}

			h := c.Response().Header()
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			origin := c.Request().Header.Get(echo.HeaderOrigin)
			switch {
			case wildcard:
				h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			case origin != "" && allowed(cfg.AllowOrigins, origin):
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}

			h.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
			if allowHeaders != "" {
				h.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
			}

			return c.NoContent(http.StatusOK)
		}
	}
}

func allowed(origins []string, origin string) bool {
	for _, o := range origins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
