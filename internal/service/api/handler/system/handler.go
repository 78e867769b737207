// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보, 배포 점검(ping) 등 상품 정보 추출과 무관한 API를 처리합니다.
package system

import (
	"net/http"
	"runtime"
	"time"

	"github.com/koreahan/coupang/internal/pkg/version"
	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/model/system"
	"github.com/koreahan/coupang/internal/service/monitor"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
)

// ConfigChecker 외부 API 키 설정 여부를 보고합니다. (provider.ScrapingBee, affiliate.Client)
type ConfigChecker interface {
	Configured() bool
}

// UsageSnapshotter 마지막 크레딧 조회 결과를 제공합니다. (monitor.Monitor)
type UsageSnapshotter interface {
	Snapshot() *monitor.Snapshot
}

// Handler 시스템 엔드포인트 핸들러
type Handler struct {
	scraping  ConfigChecker
	affiliate ConfigChecker

	// usage 모니터가 비활성화되어 있으면 nil
	usage UsageSnapshotter

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler Handler 인스턴스를 생성합니다. usage는 nil일 수 있습니다.
func NewHandler(scraping, affiliate ConfigChecker, usage UsageSnapshotter, buildInfo version.Info) *Handler {
	return &Handler{
		scraping:  scraping,
		affiliate: affiliate,
		usage:     usage,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 외부 의존성의 상태를 확인합니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, degraded, unhealthy)
// @Description - uptime: 서버 가동 시간(초)
// @Description - dependencies: scraping_provider, credit_monitor, affiliate 상태
// @Description - usage: 마지막 크레딧 조회 결과
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"remote_ip": c.RealIP(),
	}).Debug("헬스체크 요청")

	resp := system.HealthResponse{
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: make(map[string]system.DependencyStatus, 3),
	}

	resp.Dependencies[constants.DependencyScrapingProvider] = configStatus(h.scraping)
	resp.Dependencies[constants.DependencyAffiliate] = configStatus(h.affiliate)

	if h.usage != nil {
		snap := h.usage.Snapshot()
		resp.Dependencies[constants.DependencyCreditMonitor] = usageStatus(snap)
		if snap != nil {
			resp.Usage = &system.UsageStatus{
				Remaining: snap.Remaining,
				Max:       snap.Max,
				CheckedAt: snap.CheckedAt,
				Error:     snap.Error,
			}
		}
	}

	resp.Status = overallStatus(resp.Dependencies)

	return c.JSON(http.StatusOK, resp)
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   runtime.Version(),
	})
}

// PingHandler godoc
// @Summary 배포 점검
// @Description 서버가 응답하는지, 제휴 API 키가 모두 설정되었는지 확인합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.PingResponse "점검 결과"
// @Router /api/v1/ping [get]
func (h *Handler) PingHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, system.PingResponse{
		Success: true,
		HasEnv:  h.affiliate != nil && h.affiliate.Configured(),
	})
}

func configStatus(c ConfigChecker) system.DependencyStatus {
	if c == nil || !c.Configured() {
		return system.DependencyStatus{Status: constants.HealthStatusDegraded, Message: constants.MsgDepStatusNotConfigured}
	}
	return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
}

func usageStatus(snap *monitor.Snapshot) system.DependencyStatus {
	switch {
	case snap == nil:
		return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusNotChecked}
	case snap.Error != "":
		return system.DependencyStatus{Status: constants.HealthStatusDegraded, Message: snap.Error}
	case snap.Max > 0 && snap.Remaining <= 0:
		// 크레딧이 소진되면 스크래핑 프로바이더 전략이 모두 실패한다.
		return system.DependencyStatus{Status: constants.HealthStatusUnhealthy, Message: constants.MsgDepStatusLowCredit}
	case snap.Low:
		return system.DependencyStatus{Status: constants.HealthStatusDegraded, Message: constants.MsgDepStatusLowCredit}
	default:
		return system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy}
	}
}

// overallStatus 가장 나쁜 의존성 상태를 전체 상태로 사용합니다.
func overallStatus(deps map[string]system.DependencyStatus) string {
	status := constants.HealthStatusHealthy
	for _, dep := range deps {
		switch dep.Status {
		case constants.HealthStatusUnhealthy:
			return constants.HealthStatusUnhealthy
		case constants.HealthStatusDegraded:
			status = constants.HealthStatusDegraded
		}
	}
	return status
}
