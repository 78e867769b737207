package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koreahan/coupang/internal/config"
	"github.com/koreahan/coupang/internal/pkg/version"
	"github.com/koreahan/coupang/internal/service/alert"
	"github.com/koreahan/coupang/internal/service/api"
	"github.com/koreahan/coupang/internal/service/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.LoadWithFile("")
	require.NoError(t, err)
	return cfg
}

func TestAppMetadata(t *testing.T) {
	assert.Equal(t, "coupang-info", config.AppName)
	assert.Equal(t, "coupang-info.json", config.DefaultFilename)
	assert.NotEmpty(t, Version)
}

func TestBuildApplication(t *testing.T) {
	tests := []struct {
		name          string
		modify        func(cfg *config.AppConfig)
		expectMonitor bool
		expectCount   int
	}{
		{
			name:        "기본 설정: API 서버만 생성",
			modify:      func(cfg *config.AppConfig) {},
			expectCount: 1,
		},
		{
			name: "API 키 없이 모니터 활성화: 모니터 생략",
			modify: func(cfg *config.AppConfig) {
				cfg.Monitor.Enabled = true
			},
			expectCount: 1,
		},
		{
			name: "API 키와 모니터 활성화",
			modify: func(cfg *config.AppConfig) {
				cfg.Monitor.Enabled = true
				cfg.Scraping.APIKey = "key"
			},
			expectMonitor: true,
			expectCount:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadDefaults(t)
			tt.modify(cfg)

			app, err := buildApplication(cfg, version.Info{Version: "test"})
			require.NoError(t, err)
			require.Len(t, app.services, tt.expectCount)

			assert.IsType(t, alert.Noop{}, app.notifier)
			assert.IsType(t, &api.Service{}, app.services[len(app.services)-1], "API 서버는 마지막에 시작되어야 합니다")

			_, hasMonitor := app.services[0].(*monitor.Monitor)
			assert.Equal(t, tt.expectMonitor, hasMonitor)
		})
	}
}

func TestBuildApplication_Telegram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"test_bot"}}`))
	}))
	defer srv.Close()

	cfg := loadDefaults(t)
	cfg.Alert.Telegram = config.TelegramConfig{
		Enabled:  true,
		BotToken: "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11",
		ChatID:   42,
		Endpoint: srv.URL + "/bot%s/%s",
	}

	app, err := buildApplication(cfg, version.Info{})
	require.NoError(t, err)
	require.Len(t, app.services, 2)

	tg, ok := app.services[0].(*alert.Telegram)
	require.True(t, ok, "알림 발송기가 가장 먼저 시작되어야 합니다")
	assert.Same(t, tg, app.notifier)
	tg.Close()
}

func TestBuildApplication_TelegramInitFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	cfg := loadDefaults(t)
	cfg.Alert.Telegram = config.TelegramConfig{
		Enabled:  true,
		BotToken: "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11",
		ChatID:   42,
		Endpoint: srv.URL + "/bot%s/%s",
	}

	_, err := buildApplication(cfg, version.Info{})
	require.Error(t, err)
}
