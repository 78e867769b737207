package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

const redacted = "xxxxx"

var (
	sensitiveExactKeys = []string{
		"token", "key", "secret", "password", "signature",
		"api_key", "access_key", "secret_key", "access_token", "client_secret",
	}

	sensitiveSuffixes = []string{"_token", "_secret", "_key", "_password"}

	sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie"}
)

// redactURL 로그와 오류 메시지에 남기기 전에 URL의 자격 증명과 민감한 쿼리 값을 가립니다.
//
// 예: https://app.scrapingbee.com/api/v1?api_key=abc&url=... -> api_key=xxxxx
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u
	if u.User != nil {
		if _, has := u.User.Password(); has {
			ru.User = url.UserPassword(u.User.Username(), redacted)
		} else if u.User.Username() != "" {
			ru.User = url.User(redacted)
		}
	}

	if u.RawQuery != "" {
		query := ru.Query()
		for key := range query {
			if isSensitiveKey(key) {
				query.Set(key, redacted)
			}
		}
		ru.RawQuery = query.Encode()
	}

	return ru.String()
}

// RedactURL 문자열 URL을 redactURL 규칙으로 가립니다. 파싱에 실패하면 쿼리 전체를 제거합니다.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexAny(raw, "?#"); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	return redactURL(u)
}

func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range sensitiveHeaders {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}
	return masked
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	if slices.Contains(sensitiveExactKeys, lower) {
		return true
	}
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
