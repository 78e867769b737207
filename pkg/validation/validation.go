// Package validation 설정 값 검증에 사용하는 공통 함수를 제공합니다.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/koreahan/coupang/pkg/cronx"
)

// ValidateCORSOrigin 'Scheme://Host[:Port]' 형식의 Origin 또는 '*'인지 검증합니다.
//
// 경로, 쿼리, Fragment, 사용자 자격 증명이 포함된 Origin은 거부합니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return nil
	}
	if origin == "" {
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	}
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패 (input=%q): %w", origin, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("CORS Origin은 http 또는 https 스키마만 허용됩니다 (input=%q)", origin)
	case u.Path != "" || u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("CORS Origin은 경로, 쿼리, Fragment를 포함할 수 없습니다 (input=%q)", origin)
	case u.User != nil:
		return fmt.Errorf("CORS Origin은 사용자 자격 증명을 포함할 수 없습니다 (input=%q)", origin)
	}

	if portStr := u.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("CORS Origin 포트가 유효하지 않습니다 (input=%q)", origin)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Origin 포트 오류: %w", err)
		}
	}

	return ValidateHostname(u.Hostname())
}

// ValidatePort 포트 번호가 1-65535 범위인지 검증합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname localhost, IP 주소 또는 RFC 1123 호스트명인지 검증합니다.
func ValidateHostname(host string) error {
	if host == "" {
		return fmt.Errorf("호스트명이 비어있습니다")
	}
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}
	if len(host) > 253 {
		return fmt.Errorf("호스트명은 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return fmt.Errorf("호스트명 레이블 길이가 유효하지 않습니다 (host=%q)", host)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '-' {
				return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (host=%q)", host)
			}
		}
	}

	if _, err := strconv.Atoi(labels[len(labels)-1]); err == nil {
		return fmt.Errorf("최상위 도메인(TLD)은 숫자로만 구성될 수 없습니다 (host=%q)", host)
	}

	return nil
}

// ValidateHTTPURL 절대 경로의 http(s) URL인지 검증합니다.
func ValidateHTTPURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("URL 파싱 실패 (input=%q): %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("http 또는 https URL이어야 합니다 (input=%q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL에 호스트가 없습니다 (input=%q)", raw)
	}
	return nil
}

// ValidateCronExpression 초 단위를 포함한 6필드 Cron 표현식인지 검증합니다.
func ValidateCronExpression(spec string) error {
	if _, err := cronx.StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}
	return nil
}
