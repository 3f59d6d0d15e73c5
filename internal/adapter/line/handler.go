// Package line はLINE webhookの受け口とMessaging APIへの送信を担う。
package line

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/Nyukimin/otenkibot/internal/observability"
)

// Bot はイベントを応答メッセージへ変換するインターフェース。
// 内部エラーはメッセージに吸収され、errorとしては返らない。
type Bot interface {
	OnText(ctx context.Context, userID, text string) []messaging_api.MessageInterface
	OnFollow(ctx context.Context, userID string) []messaging_api.MessageInterface
	OnPostback(ctx context.Context, userID, data string) []messaging_api.MessageInterface
}

// Replier は応答トークンでの返信。
type Replier interface {
	Reply(replyToken string, messages []messaging_api.MessageInterface) error
}

// Handler はLINE webhookハンドラー。
type Handler struct {
	bot           Bot
	replier       Replier
	channelSecret string
	health        http.Handler
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// NewHandler は新しいHandlerを作成。healthは /health に公開される。
func NewHandler(bot Bot, replier Replier, channelSecret string,
	health http.Handler, logger *slog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		bot:           bot,
		replier:       replier,
		channelSecret: channelSecret,
		health:        health,
		logger:        logger,
		metrics:       metrics,
	}
}

// ServeHTTP はHTTPリクエストを処理。
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/health" && r.Method == http.MethodGet {
		h.health.ServeHTTP(w, r)
		return
	}

	if r.URL.Path == "/callback" && r.Method == http.MethodPost {
		h.handleWebhook(w, r)
		return
	}

	http.NotFound(w, r)
}

// handleWebhook は署名検証込みでイベント列を処理する。
// 1イベントの失敗は後続イベントにも後続リクエストにも波及させない。
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(h.channelSecret, r)
	if err != nil {
		h.logger.Warn("webhook parse failed", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestID := uuid.NewString()
	log := h.logger.With("request_id", requestID)

	for _, event := range cb.Events {
		h.dispatch(r.Context(), log, event)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) dispatch(ctx context.Context, log *slog.Logger, event webhook.EventInterface) {
	switch e := event.(type) {
	case webhook.MessageEvent:
		h.metrics.WebhookEvent("message")
		text, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			// テキスト以外（スタンプ・画像など）は無視する。
			return
		}
		userID := sourceUserID(e.Source)
		if userID == "" {
			return
		}
		h.reply(log, e.ReplyToken, h.bot.OnText(ctx, userID, text.Text))

	case webhook.FollowEvent:
		h.metrics.WebhookEvent("follow")
		userID := sourceUserID(e.Source)
		if userID == "" {
			return
		}
		log.Info("new follower", "user", userID)
		h.reply(log, e.ReplyToken, h.bot.OnFollow(ctx, userID))

	case webhook.PostbackEvent:
		h.metrics.WebhookEvent("postback")
		userID := sourceUserID(e.Source)
		if userID == "" || e.Postback == nil {
			return
		}
		h.reply(log, e.ReplyToken, h.bot.OnPostback(ctx, userID, e.Postback.Data))

	default:
		h.metrics.WebhookEvent("other")
	}
}

func (h *Handler) reply(log *slog.Logger, replyToken string, messages []messaging_api.MessageInterface) {
	if len(messages) == 0 {
		return
	}
	if err := h.replier.Reply(replyToken, messages); err != nil {
		log.Error("reply failed", "error", err)
	}
}

func sourceUserID(source webhook.SourceInterface) string {
	if s, ok := source.(webhook.UserSource); ok {
		return s.UserId
	}
	return ""
}
