package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/koreahan/coupang/internal/pkg/validator"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/v1/model/response"
	"github.com/koreahan/coupang/internal/service/extractor/failure"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// decodeRequest 요청 본문을 JSON으로 해석하고 검증합니다.
//
// 브라우저 클라이언트가 Preflight를 피하려고 text/plain으로 보내는 경우가 있어 Content-Type은 확인하지 않습니다.
// 빈 본문은 빈 객체로 취급합니다. 실패하면 클라이언트에 보낼 400 응답 본문을 반환합니다.
func decodeRequest(c echo.Context, v any, urlField *string) *response.FailureResponse {
	if err := json.NewDecoder(c.Request().Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &response.FailureResponse{
			Error:  constants.ErrorInvalidRequest,
			Reason: constants.ErrMsgBadRequestInvalidBody,
		}
	}

	*urlField = strings.TrimSpace(*urlField)

	if err := validator.Struct(v); err != nil {
		reason := validator.FormatValidationError(err)
		if *urlField == "" {
			reason = constants.ErrMsgNoURLProvided
		}
		return &response.FailureResponse{
			Error:  string(failure.MalformedURL),
			Reason: reason,
		}
	}

	return nil
}

// failureResponse 추출 파이프라인 오류를 응답 본문과 상태 코드로 변환합니다.
// 입력 URL 오류만 400이고, 나머지는 200으로 응답합니다.
// failure.Error가 아닌 오류는 내용을 로그에만 남기고 고정된 사유로 응답합니다.
func failureResponse(err error, finalURL string) (int, response.FailureResponse) {
	resp := response.FailureResponse{FinalURL: finalURL}

	var fe *failure.Error
	if !errors.As(err, &fe) {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"final_url": finalURL,
			"error":     err,
		}).Error("분류되지 않은 오류로 요청 처리에 실패했습니다")

		resp.Error = constants.ErrorInternal
		resp.Reason = constants.ErrMsgInternalServer
		return http.StatusOK, resp
	}

	resp.Error = string(fe.Kind)
	resp.Reason = fe.Reason()

	if fe.Kind == failure.MalformedURL {
		return http.StatusBadRequest, resp
	}
	return http.StatusOK, resp
}
