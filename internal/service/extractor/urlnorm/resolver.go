package urlnorm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/koreahan/coupang/internal/service/extractor/failure"
	"github.com/koreahan/coupang/internal/service/fetcher"
	applog "github.com/koreahan/coupang/pkg/log"
)

// resolve 리다이렉트를 직접 따라가며 Location 헤더를 읽습니다.
// 쿠팡 본 도메인에 도착하거나 3xx가 아닌 응답을 받으면 멈춥니다.
func (n *Normalizer) resolve(ctx context.Context, start *url.URL) (*url.URL, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	current := start
	for hop := 0; hop < n.maxHops; hop++ {
		location, status, err := n.head(ctx, current)
		if err != nil {
			return nil, failure.Wrap(err, failure.ShortLinkResolutionFailed, fmt.Sprintf("단축 링크 요청에 실패했습니다 (hop: %d)", hop+1))
		}

		if location == "" {
			if hop == 0 {
				return nil, failure.New(failure.ShortLinkResolutionFailed, fmt.Sprintf("단축 링크 응답에 Location 헤더가 없습니다 (상태: %d)", status))
			}
			return current, nil
		}

		next, err := current.Parse(location)
		if err != nil {
			return nil, failure.Wrap(err, failure.ShortLinkResolutionFailed, "Location 헤더를 URL로 해석할 수 없습니다")
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"hop":  hop + 1,
			"from": fetcher.RedactURL(current.String()),
			"to":   fetcher.RedactURL(next.String()),
		}).Debug("단축 링크 리다이렉트")

		current = next
		if isCanonicalHost(current.Hostname()) {
			return current, nil
		}
	}

	return current, nil
}

func (n *Normalizer) head(ctx context.Context, u *url.URL) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return "", 0, err
	}

	resp, err := n.fetcher.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", resp.StatusCode, nil
	}
	return resp.Header.Get("Location"), resp.StatusCode, nil
}
