// Package version 빌드 시점에 주입되는 버전 정보와 실행 환경 정보를 제공합니다.
//
// 빌드 예:
//
//	go build -ldflags "-X github.com/koreahan/coupang/internal/pkg/version.appVersion=v1.2.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

// 링커 플래그(-ldflags -X)로 주입되는 값입니다. 직접 참조하지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
	buildNumber   = ""
)

var current atomic.Value

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

func init() {
	Set(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
}

// Info 애플리케이션 빌드 정보
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirty_build"`
}

// Get 현재 빌드 정보를 반환합니다.
func Get() Info {
	if v, ok := current.Load().(Info); ok {
		return v
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
}

// Set 빌드 정보를 설정합니다. 비어 있는 필드는 런타임 정보와 VCS 메타데이터로 채워집니다.
func Set(bi Info) {
	current.Store(enrich(bi))
}

// Version 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

func enrich(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	// ldflags가 없는 'go run' 환경에서도 커밋 정보를 얻기 위해 항상 확인한다.
	if val, ok := readBuildInfo(); ok {
		for _, s := range val.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" || bi.Commit == unknown {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" || bi.BuildDate == unknown {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && val.Main.Version != "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}
	return bi
}

// ToFields 구조적 로깅에 사용할 맵을 반환합니다.
func (i Info) ToFields() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 빌드 정보를 한 줄로 요약합니다. 예: "v1.2.0 (commit: f25b8bf, build: 42)"
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = unknown
	}
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		c := i.Commit
		if len(c) > 7 {
			c = c[:7]
		}
		details = append(details, "commit: "+c)
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if i.BuildDate != "" && i.BuildDate != unknown {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, "go: "+i.GoVersion)
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
