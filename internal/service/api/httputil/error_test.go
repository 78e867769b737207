package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"HTTPError 문자열", echo.NewHTTPError(http.StatusBadRequest, "MalformedUrl"), http.StatusBadRequest, "MalformedUrl"},
		{"라우터 404", echo.ErrNotFound, http.StatusNotFound, constants.ErrMsgNotFound},
		{"라우터 405", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, constants.ErrMsgMethodNotAllowed},
		{"본문 크기 초과", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, constants.ErrMsgRequestEntityTooLarge},
		{"잘못된 입력", apperrors.New(apperrors.InvalidInput, "bad"), http.StatusBadRequest, constants.ErrMsgBadRequest},
		{"시간 초과", apperrors.Wrap(errors.New("deadline"), apperrors.Timeout, "budget"), http.StatusServiceUnavailable, constants.ErrMsgServiceUnavailable},
		{"일반 에러", errors.New("secret detail"), http.StatusInternalServerError, constants.ErrMsgInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := resolveError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()

	t.Run("JSON 응답", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

		ErrorHandler(errors.New("secret detail"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
		assert.NotContains(t, rec.Body.String(), "secret detail")
	})

	t.Run("HEAD 요청은 본문 없음", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

		ErrorHandler(echo.ErrNotFound, c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("이미 응답한 경우 무시", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		_ = c.String(http.StatusOK, "done")

		ErrorHandler(echo.ErrInternalServerError, c)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "done", rec.Body.String())
	})
}
