package api

import (
	"github.com/koreahan/coupang/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes /api/v1 밖의 라우트를 등록합니다.
// 로드밸런서 헬스체크가 쓰는 /health와 배포 확인용 /version, Swagger UI가 여기에 속합니다.
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)

	registerSwaggerRoutes(e)
}

// registerSwaggerRoutes docs 패키지가 swag에 등록한 문서를 /swagger/doc.json으로 제공합니다.
func registerSwaggerRoutes(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
