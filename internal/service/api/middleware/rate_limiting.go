package middleware

import (
	"sync"
	"time"

	"github.com/koreahan/coupang/internal/service/api/constants"
	"github.com/koreahan/coupang/internal/service/api/httputil"
	applog "github.com/koreahan/coupang/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// limiterIdleTTL 마지막 요청 이후 이 시간이 지난 IP의 버킷은 정리 대상이 됩니다.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter IP 주소별 Token Bucket을 관리합니다.
//
// 오래 요청이 없던 IP는 limiterIdleTTL 주기로 정리되므로 맵이 무한히 커지지 않습니다.
type ipRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	rate      rate.Limit
	burst     int
	lastSweep time.Time

	now func() time.Time
}

func newIPRateLimiter(requestsPerSecond float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters:  make(map[string]*visitor),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// getLimiter IP 주소의 Limiter를 반환합니다. 처음 보는 IP이면 가득 찬 버킷을 새로 만듭니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := i.now()

	i.mu.Lock()
	defer i.mu.Unlock()

	if now.Sub(i.lastSweep) >= limiterIdleTTL {
		i.sweep(now)
	}

	v, ok := i.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.rate, i.burst)}
		i.limiters[ip] = v
	}
	v.lastSeen = now

	return v.limiter
}

// sweep 호출자가 mu를 잡고 있어야 합니다.
func (i *ipRateLimiter) sweep(now time.Time) {
	for ip, v := range i.limiters {
		if now.Sub(v.lastSeen) >= limiterIdleTTL {
			delete(i.limiters, ip)
		}
	}
	i.lastSweep = now
}

// RateLimiting IP 기반 Rate Limiting 미들웨어를 반환합니다.
//
// 한도를 넘은 요청은 Retry-After 헤더와 함께 429 Too Many Requests로 거부됩니다.
// 추출 요청 하나가 스크래핑 크레딧을 여러 번 소모할 수 있으므로 초당 요청 수를 낮게 유지합니다.
//
// requestsPerSecond나 burst가 0 이하이면 패닉이 발생합니다.
func RateLimiting(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(constants.PanicMsgRateLimitRequestsPerSecondInvalid)
	}
	if burst <= 0 {
		panic(constants.PanicMsgRateLimitBurstInvalid)
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				req := c.Request()
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"remote_ip":  ip,
					"path":       req.URL.Path,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Warn("IP별 요청 한도를 초과하여 거부했습니다")

				c.Response().Header().Set("Retry-After", "1")

				return httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
