package line

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Sender はMessaging APIへの送信をまとめる。
type Sender struct {
	api *messaging_api.MessagingApiAPI
}

// NewSender はMessaging APIクライアントを作る。
func NewSender(channelToken string) (*Sender, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("init messaging API: %w", err)
	}
	return &Sender{api: api}, nil
}

// Reply は応答トークンでメッセージを返信する。
func (s *Sender) Reply(replyToken string, messages []messaging_api.MessageInterface) error {
	if len(messages) == 0 {
		return nil
	}
	_, err := s.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

// Push は利用者へプッシュ送信する。
func (s *Sender) Push(userID string, messages []messaging_api.MessageInterface) error {
	if len(messages) == 0 {
		return nil
	}
	_, err := s.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       userID,
		Messages: messages,
	}, "")
	if err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	return nil
}
