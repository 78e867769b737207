package handler

import (
	"net/http"

	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/v1/model/request"
	"github.com/koreahan/coupang/internal/service/api/v1/model/response"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// ProductInfoHandler godoc
// @Summary 쿠팡 상품명/최저가 조회
// @Description 상품 URL(또는 단축 링크)을 받아 상품명과 최저가를 추출합니다.
// @Description
// @Description 추출에 실패하면 200 상태 코드와 함께 success=false 본문을 반환합니다.
// @Description error 필드는 AllStrategiesExhausted, NoDataExtracted 등 실패 분류입니다.
// @Description 상품명만 찾은 경우 success=true, price=null 입니다.
// @Tags Product
// @Accept json
// @Produce json
// @Param request body request.ProductInfoRequest true "조회 요청"
// @Success 200 {object} response.ProductInfoResponse "추출 성공"
// @Failure 400 {object} response.FailureResponse "URL 누락 또는 형식 오류"
// @Router /api/v1/product-info [post]
func (h *Handler) ProductInfoHandler(c echo.Context) error {
	var req request.ProductInfoRequest
	if bad := decodeRequest(c, &req, &req.URL); bad != nil {
		return c.JSON(http.StatusBadRequest, bad)
	}

	logger := applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   "/api/v1/product-info",
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		"remote_ip":  c.RealIP(),
	})

	res, err := h.extractor.Extract(c.Request().Context(), req.URL)
	if err != nil {
		finalURL := ""
		if res != nil {
			finalURL = res.FinalURL
		}

		code, resp := failureResponse(err, finalURL)
		logger.WithFields(applog.Fields{
			"final_url": finalURL,
			"error":     resp.Error,
			"reason":    resp.Reason,
		}).Warn("상품 정보 추출 실패")

		return c.JSON(code, resp)
	}

	resp := response.ProductInfoResponse{
		Success:   true,
		FinalURL:  res.FinalURL,
		Title:     res.Title,
		Price:     res.Price,
		Currency:  res.Currency,
		Provider:  res.Provider,
		Strategy:  res.Strategy,
		Escalated: res.Escalated,
	}
	if req.Debug {
		prices := res.Candidates
		if prices == nil {
			prices = []int64{}
		}
		resp.Debug = &response.DebugInfo{Prices: prices}
	}

	return c.JSON(http.StatusOK, resp)
}
