// Package provider 상품 페이지를 실제로 가져오는 업스트림(스크래핑 프로바이더, 직접 요청)을 추상화합니다.
package provider

import (
	"context"
	"net/http"
)

const component = "extractor.provider"

// Name 프로바이더 식별자. 설정 파일의 strategies[].provider 값과 같습니다.
type Name string

const (
	NameScrapingBee Name = "scrapingbee"
	NameDirect      Name = "direct"
)

// Device 요청 헤더 프로필
type Device string

const (
	DeviceDesktop Device = "desktop"
	DeviceMobile  Device = "mobile"
)

// ProxyTier 스크래핑 프로바이더의 프록시 등급
type ProxyTier string

const (
	ProxyStandard ProxyTier = "standard"
	ProxyPremium  ProxyTier = "premium"
)

// Request 한 번의 페이지 요청
type Request struct {
	TargetURL string
	Render    bool
	Device    Device
	Proxy     ProxyTier
}

// Response 프로바이더가 돌려준 페이지. HTML은 UTF-8로 변환되어 있습니다.
type Response struct {
	HTML       string
	StatusCode int

	// FinalURL 직접 요청에서 리다이렉트를 따라간 최종 URL. 프로바이더 경유 시에는 요청한 URL입니다.
	FinalURL string

	RawSize int
}

// Provider 페이지를 가져오는 업스트림
type Provider interface {
	Name() Name

	// Fetch 요청이 지원되지 않는 조합(예: 렌더링을 지원하지 않는 프로바이더에 렌더링 요청)이면 즉시 오류를 반환합니다.
	Fetch(ctx context.Context, req Request) (*Response, error)
}

const acceptLanguage = "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7"

var userAgents = map[Device]string{
	DeviceDesktop: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	DeviceMobile:  "Mozilla/5.0 (Linux; Android 13; SM-S908N) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Mobile Safari/537.36",
}

// DeviceHeader 기기 프로필의 User-Agent와 Accept-Language 헤더를 반환합니다. 알 수 없는 기기는 데스크톱으로 취급합니다.
func DeviceHeader(device Device) http.Header {
	ua, ok := userAgents[device]
	if !ok {
		ua = userAgents[DeviceDesktop]
	}

	h := make(http.Header, 2)
	h.Set("User-Agent", ua)
	h.Set("Accept-Language", acceptLanguage)
	return h
}
