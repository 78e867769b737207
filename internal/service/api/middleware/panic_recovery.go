package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/api/constants"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// maxPanicStackBytes 로그에 남기는 스택 트레이스의 최대 크기
const maxPanicStackBytes = 8 << 10

// PanicRecovery 핸들러의 panic을 복구합니다.
//
// panic 값과 스택은 로그에만 남기고, 클라이언트에는 내부 정보가 없는 500 응답을 보냅니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				if r == http.ErrAbortHandler {
					// net/http가 연결을 끊기 위해 사용하는 값이므로 그대로 전파한다.
					panic(r)
				}

				req := c.Request()
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"method":     req.Method,
					"path":       req.URL.Path,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"error":      panicError(r),
					"stack":      panicStack(),
				}).Error("핸들러에서 panic이 발생하여 복구했습니다")

				err = echo.NewHTTPError(http.StatusInternalServerError, constants.ErrMsgInternalServer).SetInternal(panicError(r))
			}()

			return next(c)
		}
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "panic")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("panic: %v", r))
}

func panicStack() string {
	buf := make([]byte, maxPanicStackBytes)
	return string(buf[:runtime.Stack(buf, false)])
}
