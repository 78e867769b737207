package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/koreahan/coupang/internal/service/api/constants"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// HTTPLogger 요청마다 한 줄의 접근 로그를 남깁니다.
//
// 5xx는 Error, 4xx는 Warn, 나머지는 Info 레벨로 기록하며 api_key 등 민감한 쿼리 값은 마스킹합니다.
// 핸들러 오류는 여기서 에러 핸들러로 넘겨 응답 상태가 확정된 뒤에 기록되도록 합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			entry := applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
				"method":     req.Method,
				"uri":        maskSensitiveQueryParams(req.RequestURI),
				"status":     res.Status,
				"bytes_out":  res.Size,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
				"user_agent": req.UserAgent(),
				"request_id": res.Header().Get(echo.HeaderXRequestID),
			})

			switch {
			case res.Status >= http.StatusInternalServerError:
				entry.Error("HTTP 요청 처리 실패")
			case res.Status >= http.StatusBadRequest:
				entry.Warn("HTTP 요청 거부")
			default:
				entry.Info("HTTP 요청")
			}

			return nil
		}
	}
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 마스킹합니다.
// URI 파싱에 실패하면 원본을 반환합니다.
//
//	입력: "/api/v1/ping?api_key=secret123456789&id=100"
//	출력: "/api/v1/ping?api_key=secr%2A%2A%2A6789&id=100"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, applog.MaskSensitiveData(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
