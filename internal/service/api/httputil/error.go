package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/model/response"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 전역 에러 핸들러입니다.
//
// 핸들러가 반환한 에러를 ErrorResponse JSON으로 바꿔 응답합니다.
// echo.HTTPError가 아닌 에러는 apperrors 타입으로 상태 코드를 정하며, 내부 메시지는 응답에 노출하지 않습니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolveError(err)

	req := c.Request()
	if code >= http.StatusBadRequest {
		entry := applog.WithComponentAndFields(constants.ComponentErrorHandler, applog.Fields{
			"path":        req.URL.Path,
			"method":      req.Method,
			"status_code": code,
			"error":       err,
			"remote_ip":   c.RealIP(),
			"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
		})
		if code >= http.StatusInternalServerError {
			entry.Error(constants.LogMsgHTTP5xxServerError)
		} else {
			entry.Warn(constants.LogMsgHTTP4xxClientError)
		}
	}

	if c.Response().Committed {
		return
	}

	if req.Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		Success:    false,
		Error:      message,
		ResultCode: code,
	})
}

// resolveError 에러에 대응하는 HTTP 상태 코드와 사용자 메시지를 결정합니다.
func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := constants.ErrMsgInternalServer
		switch msg := he.Message.(type) {
		case string:
			message = msg
		case response.ErrorResponse:
			message = msg.Error
		}

		// Echo 라우터가 만드는 영문 기본 메시지를 대체한다.
		switch he.Code {
		case http.StatusNotFound:
			message = constants.ErrMsgNotFound
		case http.StatusMethodNotAllowed:
			message = constants.ErrMsgMethodNotAllowed
		case http.StatusRequestEntityTooLarge:
			message = constants.ErrMsgRequestEntityTooLarge
		}
		return he.Code, message
	}

	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput:
		return http.StatusBadRequest, constants.ErrMsgBadRequest
	case apperrors.NotFound:
		return http.StatusNotFound, constants.ErrMsgNotFound
	case apperrors.Timeout, apperrors.Unavailable:
		return http.StatusServiceUnavailable, constants.ErrMsgServiceUnavailable
	default:
		return http.StatusInternalServerError, constants.ErrMsgInternalServer
	}
}
