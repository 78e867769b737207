package system

// VersionResponse coupang-info 빌드 정보
//
// 값은 빌드 시 -ldflags로 주입되며, 비어 있는 Commit과 BuildDate는 바이너리의 VCS 정보로 채웁니다.
// 끝내 알 수 없는 값은 unknown으로 응답합니다.
type VersionResponse struct {
	Version     string `json:"version" example:"v1.0.0"`
	Commit      string `json:"commit" example:"3f2c9ab"`
	BuildDate   string `json:"build_date" example:"2026-03-02T09:00:00Z"`
	BuildNumber string `json:"build_number" example:"42"`
	GoVersion   string `json:"go_version" example:"go1.24.0"`
}
