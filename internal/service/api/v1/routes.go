// Package v1 /api/v1 경로 하위의 엔드포인트를 등록합니다.
//
// 주요 엔드포인트:
//   - POST /api/v1/product-info - 상품명/최저가 추출
//   - POST /api/v1/deeplink     - 쿠팡 파트너스 딥링크 생성
//   - GET  /api/v1/ping         - 배포 점검
package v1

import (
	"github.com/koreahan/coupang/internal/service/api/handler/system"
	"github.com/koreahan/coupang/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
// POST로만 등록하므로 다른 메서드로 호출하면 Echo가 405를 반환합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, sh *system.Handler) {
	g := e.Group("/api/v1")

	g.POST("/product-info", h.ProductInfoHandler)
	g.POST("/deeplink", h.DeeplinkHandler)
	g.GET("/ping", sh.PingHandler)
}
