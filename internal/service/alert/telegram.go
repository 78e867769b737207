package alert

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	applog "github.com/koreahan/coupang/pkg/log"
	"golang.org/x/time/rate"
)

const (
	// messageMaxLength 텔레그램 Bot API의 메시지 길이 제한(바이트 기준으로 보수적으로 적용)
	messageMaxLength = 4096

	queueSize = 32

	defaultHTTPTimeout = 10 * time.Second
	defaultRetryDelay  = time.Second

	// drainTimeout 종료 시 대기열에 남은 메시지를 보내는 데 허용하는 시간
	drainTimeout = 5 * time.Second
)

// botClient 테스트에서 대체할 수 있도록 tgbotapi.BotAPI 중 사용하는 메서드만 추린 인터페이스
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram 단일 발송 고루틴이 대기열의 메시지를 순서대로 텔레그램 채팅방에 보냅니다.
type Telegram struct {
	bot    botClient
	chatID int64

	queue   chan string
	limiter *rate.Limiter

	retryDelay time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

var _ Notifier = (*Telegram)(nil)

// NewTelegram 봇 토큰을 검증하기 위해 생성 시점에 getMe를 호출합니다.
// endpoint는 "https://api.telegram.org/bot%s/%s" 형식이어야 합니다.
func NewTelegram(botToken string, chatID int64, endpoint string) (*Telegram, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	client := &http.Client{Timeout: defaultHTTPTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(botToken, endpoint, client)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. bot_token을 확인하세요")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": bot.Self.UserName,
		"chat_id":      chatID,
	}).Debug("텔레그램 알림 클라이언트 초기화 완료")

	return newTelegramWithBot(bot, chatID), nil
}

func newTelegramWithBot(bot botClient, chatID int64) *Telegram {
	return &Telegram{
		bot:        bot,
		chatID:     chatID,
		queue:      make(chan string, queueSize),
		limiter:    rate.NewLimiter(rate.Every(time.Second), 3),
		retryDelay: defaultRetryDelay,
		done:       make(chan struct{}),
	}
}

// Notify 대기열이 가득 찼거나 종료된 뒤에는 메시지를 버리고 false를 반환합니다.
func (t *Telegram) Notify(message string) bool {
	if message == "" || t.isClosed() {
		return false
	}

	select {
	case t.queue <- message:
		return true
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id":    t.chatID,
			"queue_size": queueSize,
		}).Warn("알림 대기열이 가득 차서 메시지를 버립니다")
		return false
	}
}

// Start 발송 고루틴을 시작합니다. ctx가 취소되거나 Close가 호출되면 남은 메시지를 보낸 뒤 종료하고
// wg.Done()을 호출합니다. 호출자는 미리 wg.Add(1)을 해 두어야 합니다.
func (t *Telegram) Start(ctx context.Context, wg *sync.WaitGroup) error {
	go func() {
		defer wg.Done()
		t.run(ctx)
	}()
	return nil
}

// Close 이후의 Notify는 모두 거부됩니다. 여러 번 호출해도 안전합니다.
func (t *Telegram) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
	})
}

func (t *Telegram) isClosed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Telegram) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": t.chatID,
				"panic":   r,
			}).Error("알림 발송 고루틴에서 패닉이 발생하여 종료합니다")
			t.Close()
		}
	}()

	for {
		select {
		case message := <-t.queue:
			t.send(ctx, message)

		case <-ctx.Done():
			t.Close()
			t.drain()
			return

		case <-t.done:
			t.drain()
			return
		}
	}
}

// drain 종료 신호 이후 대기열에 남은 메시지를 제한 시간 안에서 보냅니다.
func (t *Telegram) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case message := <-t.queue:
			t.send(ctx, message)
		default:
			return
		}

		if ctx.Err() != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id":   t.chatID,
				"remaining": len(t.queue),
			}).Warn("종료 제한 시간이 지나 남은 알림을 버립니다")
			return
		}
	}
}

func (t *Telegram) send(ctx context.Context, message string) {
	for _, chunk := range splitMessage(message, messageMaxLength) {
		if err := t.sendChunk(ctx, chunk); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": t.chatID,
				"error":   err,
			}).Error("텔레그램 알림 발송에 실패했습니다")
			return
		}
	}
}

// sendChunk 429 응답이면 retry_after만큼 기다린 뒤 한 번 더 보냅니다.
func (t *Telegram) sendChunk(ctx context.Context, chunk string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, chunk))
	if err == nil {
		return nil
	}

	code, retryAfter := telegramErrorCode(err)
	if code != http.StatusTooManyRequests {
		return err
	}

	wait := t.retryDelay
	if retryAfter > 0 {
		wait = time.Duration(retryAfter) * time.Second
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	_, err = t.bot.Send(tgbotapi.NewMessage(t.chatID, chunk))
	return err
}

// telegramErrorCode 텔레그램 API 오류의 코드와 retry_after 값을 꺼냅니다.
func telegramErrorCode(err error) (code, retryAfter int) {
	var apiErrPtr *tgbotapi.Error
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, apiErrPtr.RetryAfter
	}
	var apiErr tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.RetryAfter
	}
	return 0, 0
}

// splitMessage limit 바이트를 넘는 메시지를 줄 단위로 나눕니다. 한 줄이 limit보다 길면 문자 경계에서 자릅니다.
func splitMessage(message string, limit int) []string {
	if len(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder

	flush := func() {
		if sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
	}

	for line := range strings.SplitSeq(message, "\n") {
		needed := len(line)
		if sb.Len() > 0 {
			needed++
		}

		if sb.Len()+needed <= limit {
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(line)
			continue
		}

		flush()
		for len(line) > limit {
			var chunk string
			chunk, line = safeSplit(line, limit)
			chunks = append(chunks, chunk)
		}
		sb.WriteString(line)
	}
	flush()

	return chunks
}

// safeSplit UTF-8 문자가 중간에 잘리지 않도록 limit 이하의 마지막 문자 경계에서 자릅니다.
func safeSplit(s string, limit int) (chunk, remainder string) {
	if len(s) <= limit {
		return s, ""
	}

	i := limit
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		return s[:limit], s[limit:]
	}
	return s[:i], s[i:]
}
