package line

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyukimin/otenkibot/internal/observability"
)

const testSecret = "test-channel-secret"

type recordingBot struct {
	texts     []string
	follows   []string
	postbacks []string
}

func (b *recordingBot) OnText(_ context.Context, userID, text string) []messaging_api.MessageInterface {
	b.texts = append(b.texts, userID+":"+text)
	return []messaging_api.MessageInterface{messaging_api.TextMessage{Text: "ok"}}
}

func (b *recordingBot) OnFollow(_ context.Context, userID string) []messaging_api.MessageInterface {
	b.follows = append(b.follows, userID)
	return []messaging_api.MessageInterface{messaging_api.TextMessage{Text: "welcome"}}
}

func (b *recordingBot) OnPostback(_ context.Context, userID, data string) []messaging_api.MessageInterface {
	b.postbacks = append(b.postbacks, userID+":"+data)
	return nil
}

type recordingReplier struct {
	tokens   []string
	messages [][]messaging_api.MessageInterface
}

func (r *recordingReplier) Reply(token string, msgs []messaging_api.MessageInterface) error {
	r.tokens = append(r.tokens, token)
	r.messages = append(r.messages, msgs)
	return nil
}

func newTestHandler() (*Handler, *recordingBot, *recordingReplier) {
	bot := &recordingBot{}
	replier := &recordingReplier{}
	h := NewHandler(bot, replier, testSecret,
		observability.NewHealthChecker().Handler(),
		slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewNopMetrics())
	return h, bot, replier
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(h *Handler, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-line-signature", signature)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleWebhook_TextMessage(t *testing.T) {
	h, bot, replier := newTestHandler()

	body := `{
		"destination": "Ubot",
		"events": [{
			"type": "message",
			"mode": "active",
			"timestamp": 1756600000000,
			"replyToken": "token-1",
			"source": {"type": "user", "userId": "U1"},
			"message": {"type": "text", "id": "m1", "text": "天気"}
		}]
	}`

	rec := postWebhook(h, body, sign(testSecret, body))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []string{"U1:天気"}, bot.texts)
	require.Equal(t, []string{"token-1"}, replier.tokens)
}

func TestHandleWebhook_FollowEvent(t *testing.T) {
	h, bot, replier := newTestHandler()

	body := `{
		"destination": "Ubot",
		"events": [{
			"type": "follow",
			"mode": "active",
			"timestamp": 1756600000000,
			"replyToken": "token-2",
			"source": {"type": "user", "userId": "U2"}
		}]
	}`

	rec := postWebhook(h, body, sign(testSecret, body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"U2"}, bot.follows)
	assert.Equal(t, []string{"token-2"}, replier.tokens)
}

func TestHandleWebhook_PostbackWithoutReply(t *testing.T) {
	h, bot, replier := newTestHandler()

	body := `{
		"destination": "Ubot",
		"events": [{
			"type": "postback",
			"mode": "active",
			"timestamp": 1756600000000,
			"replyToken": "token-3",
			"source": {"type": "user", "userId": "U3"},
			"postback": {"data": "change_location"}
		}]
	}`

	rec := postWebhook(h, body, sign(testSecret, body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"U3:change_location"}, bot.postbacks)

	// 応答メッセージが無ければReplyは呼ばない。
	assert.Empty(t, replier.tokens)
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	h, bot, _ := newTestHandler()

	body := `{"destination": "Ubot", "events": []}`
	rec := postWebhook(h, body, sign("wrong-secret", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, bot.texts)
}

func TestHandleWebhook_IgnoresNonTextMessage(t *testing.T) {
	h, bot, replier := newTestHandler()

	body := `{
		"destination": "Ubot",
		"events": [{
			"type": "message",
			"mode": "active",
			"timestamp": 1756600000000,
			"replyToken": "token-4",
			"source": {"type": "user", "userId": "U4"},
			"message": {"type": "sticker", "id": "m2", "packageId": "1", "stickerId": "2"}
		}]
	}`

	rec := postWebhook(h, body, sign(testSecret, body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, bot.texts)
	assert.Empty(t, replier.tokens)
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestUnknownPath(t *testing.T) {
	h, _, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
