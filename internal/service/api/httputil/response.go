// Package httputil API 응답과 에러 생성을 위한 공통 함수를 제공합니다.
package httputil

import (
	"net/http"

	"github.com/koreahan/coupang/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		Success:    false,
		Error:      message,
		ResultCode: code,
	})
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}
