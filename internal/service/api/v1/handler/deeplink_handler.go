package handler

import (
	"net/http"

	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/v1/model/request"
	"github.com/koreahan/coupang/internal/service/api/v1/model/response"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// DeeplinkHandler godoc
// @Summary 쿠팡 파트너스 딥링크 생성
// @Description 상품 URL을 정규화한 뒤 쿠팡 파트너스 Open API로 단축 딥링크를 생성합니다.
// @Description 제휴 API 키가 설정되지 않았거나 생성에 실패하면 200 상태 코드와 함께 success=false 본문을 반환합니다.
// @Tags Affiliate
// @Accept json
// @Produce json
// @Param request body request.DeeplinkRequest true "딥링크 요청"
// @Success 200 {object} response.DeeplinkResponse "생성 성공"
// @Failure 400 {object} response.FailureResponse "URL 누락 또는 형식 오류"
// @Router /api/v1/deeplink [post]
func (h *Handler) DeeplinkHandler(c echo.Context) error {
	var req request.DeeplinkRequest
	if bad := decodeRequest(c, &req, &req.URL); bad != nil {
		return c.JSON(http.StatusBadRequest, bad)
	}

	if !h.deeplinks.Configured() {
		return c.JSON(http.StatusOK, response.FailureResponse{
			Error:  constants.ErrorNotConfigured,
			Reason: constants.ErrMsgAffiliateNotConfigured,
		})
	}

	ctx := c.Request().Context()

	norm, err := h.normalizer.Normalize(ctx, req.URL)
	if err != nil {
		code, resp := failureResponse(err, "")
		return c.JSON(code, resp)
	}

	links, err := h.deeplinks.CreateDeeplink(ctx, norm.URL)
	if err != nil {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"endpoint":   "/api/v1/deeplink",
			"url":        norm.URL,
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"error":      err,
		}).Warn("딥링크 생성 실패")

		return c.JSON(http.StatusOK, response.FailureResponse{
			FinalURL: norm.URL,
			Error:    constants.ErrorDeeplinkFailed,
			Reason:   err.Error(),
		})
	}

	link := links[0]
	return c.JSON(http.StatusOK, response.DeeplinkResponse{
		Success:     true,
		OriginalURL: link.OriginalURL,
		ShortenURL:  link.ShortenURL,
		LandingURL:  link.LandingURL,
	})
}
