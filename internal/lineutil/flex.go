// Package lineutil はLINEメッセージオブジェクトの組み立てヘルパー。
package lineutil

import (
	"fmt"
	"time"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/Nyukimin/otenkibot/internal/domain/forecast"
)

const (
	colorTitle = "#1DB446"
	colorLabel = "#aaaaaa"
	colorValue = "#666666"
)

// NewTextMessage はテキストメッセージを作る。
func NewTextMessage(text string) messaging_api.TextMessage {
	return messaging_api.TextMessage{Text: text}
}

// WithChangeLocationQuickReply は「場所変更」のクイックリプライを付ける。
func WithChangeLocationQuickReply(msg messaging_api.TextMessage) messaging_api.TextMessage {
	msg.QuickReply = changeLocationQuickReply()
	return msg
}

func changeLocationQuickReply() *messaging_api.QuickReply {
	return &messaging_api.QuickReply{
		Items: []messaging_api.QuickReplyItem{
			{
				Action: messaging_api.PostbackAction{
					Label:       "場所変更",
					Data:        "change_location",
					DisplayText: "場所変更",
				},
			},
		},
	}
}

// NewForecastFlex は予報要約を固定レイアウトのカードに整形する。
// ヘッダー（タイトル・地域名・日付）と4行（天気・最高・最低・降水確率）。
func NewForecastFlex(s forecast.Summary, areaName string, today time.Time) messaging_api.FlexMessage {
	if areaName == "" {
		areaName = s.AreaName
	}

	body := messaging_api.FlexBox{
		Layout: "vertical",
		Contents: []messaging_api.FlexComponentInterface{
			messaging_api.FlexText{
				Text:   "今日の天気",
				Weight: "bold",
				Color:  colorTitle,
				Size:   "sm",
			},
			messaging_api.FlexText{
				Text:   areaName,
				Weight: "bold",
				Size:   "xl",
				Margin: "md",
				Wrap:   true,
			},
			messaging_api.FlexText{
				Text:  today.Format("2006/01/02"),
				Size:  "xs",
				Color: colorLabel,
			},
			messaging_api.FlexSeparator{Margin: "lg"},
			messaging_api.FlexBox{
				Layout:  "vertical",
				Margin:  "lg",
				Spacing: "sm",
				Contents: []messaging_api.FlexComponentInterface{
					labeledRow("天気", s.Weather),
					labeledRow("最高気温", formatTemp(s.High)),
					labeledRow("最低気温", formatTemp(s.Low)),
					labeledRow("降水確率", formatPercent(s.Pop)),
				},
			},
		},
	}

	alt := fmt.Sprintf("%sの今日の天気: %s", areaName, s.Weather)
	return messaging_api.FlexMessage{
		AltText:  alt,
		Contents: messaging_api.FlexBubble{Body: &body},
	}
}

func labeledRow(label, value string) messaging_api.FlexBox {
	return messaging_api.FlexBox{
		Layout:  "baseline",
		Spacing: "sm",
		Contents: []messaging_api.FlexComponentInterface{
			messaging_api.FlexText{
				Text:  label,
				Size:  "sm",
				Color: colorLabel,
				Flex:  2,
			},
			messaging_api.FlexText{
				Text:  value,
				Size:  "sm",
				Color: colorValue,
				Flex:  4,
				Wrap:  true,
			},
		},
	}
}

func formatTemp(v string) string {
	if v == forecast.Placeholder {
		return v
	}
	return v + "℃"
}

func formatPercent(v string) string {
	if v == forecast.Placeholder {
		return v
	}
	return v + "%"
}
