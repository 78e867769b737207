package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/koreahan/coupang/internal/config"
	"github.com/koreahan/coupang/internal/pkg/version"
	applog "github.com/koreahan/coupang/pkg/log"
)

// @title Coupang Product Info API
// @version 1.0.0
// @description 쿠팡 상품 URL에서 상품명과 최저가를 추출하는 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 상품 정보 추출 (단축 링크 해석, 전략 사다리, 다중 출처 파싱)
// @description - 쿠팡 파트너스 딥링크 생성
// @description
// @description ## 응답 규칙
// @description 추출에 실패해도 HTTP 200과 함께 success=false 본문을 반환합니다.
// @description URL이 없거나 해석할 수 없는 경우에만 400을 반환합니다.

// @contact.name koreahan
// @contact.url https://github.com/koreahan/coupang

// @license.name MIT

// @BasePath /

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const banner = `
   ____                                       ___        __
  / ___| ___   _   _  _ __    __ _  _ __    |_ _|_ __  / _|  ___
 | |    / _ \ | | | || '_ \  / _' || '_ \    | || '_ \| |_  / _ \
 | |___| (_) || |_| || |_) || (_| || | | |   | || | | |  _|| (_) |
  \____|\___/  \__,_|| .__/  \__,_||_| |_|  |___|_| |_|_|   \___/
                     |_|                                    %s
--------------------------------------------------------------------------------
`

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	fmt.Printf(banner, Version)

	buildInfo := version.Info{
		Version:     Version,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	version.Set(buildInfo)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(w)
	}

	app, err := buildApplication(appConfig, version.Get())
	if err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": err,
		}).Error("서비스 생성 실패")
		appLogCloser.Close()
		os.Exit(1)
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range app.services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 이미 시작된 서비스도 종료
			serviceStopWG.Wait()

			applog.StandardLogger().Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponentAndFields("main", applog.Fields{
		"port": appConfig.HTTPServer.ListenPort,
	}).Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 신호를 받았습니다")
	cancel()
	serviceStopWG.Wait()
}
