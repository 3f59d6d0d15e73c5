// Package bot は会話の状態機械と応答メッセージの組み立てを担う。
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/Nyukimin/otenkibot/internal/domain/area"
	"github.com/Nyukimin/otenkibot/internal/domain/forecast"
	"github.com/Nyukimin/otenkibot/internal/domain/user"
	"github.com/Nyukimin/otenkibot/internal/lineutil"
	"github.com/Nyukimin/otenkibot/internal/observability"
)

// AreaResolver は地名→予報区の解決。
type AreaResolver interface {
	Resolve(ctx context.Context, raw string) (area.Resolution, error)
}

const (
	greetingText = "はじめまして！お天気botです☀️\n" +
		"毎朝の天気予報をお届けします。\n" +
		"まずは地名を送って、お住まいの場所を登録してください。\n" +
		"（例：横浜市、大阪市、札幌市）"
	promptLocationText = "新しい場所の地名を送ってください。\n（例：横浜市、大阪市、札幌市）"
	notFoundText       = "ごめんなさい、その場所が見つかりませんでした🙏\n" +
		"別の書き方（市区町村名など）でもう一度送ってみてください。"
	notRegisteredText = "まだ場所が登録されていません。\n地名を送って登録してください。"
	apologyText       = "ごめんなさい、天気予報がうまく取得できませんでした🙏\nしばらくしてからもう一度お試しください。"
	helpText          = "使い方\n" +
		"・「天気」と送ると登録した場所の今日の予報をお届けします\n" +
		"・「場所変更」と送ると登録地を変えられます"
)

// changeLocationKeywords は登録地の変更を始めるキーワード。
var changeLocationKeywords = []string{"場所変更", "地点変更", "場所登録", "地点登録"}

// PostbackChangeLocation はリッチメニュー等から届くポストバックデータ。
const PostbackChangeLocation = "change_location"

// Orchestrator は1イベントを応答メッセージ列へ変換する。
// 内部エラーは謝罪テキストに変換し、呼び出し側へは伝播させない。
type Orchestrator struct {
	store     user.Store
	resolver  AreaResolver
	forecasts forecast.Provider
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New はOrchestratorを作る。
func New(store user.Store, res AreaResolver, forecasts forecast.Provider,
	clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Orchestrator {
	return &Orchestrator{
		store:     store,
		resolver:  res,
		forecasts: forecasts,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// OnFollow は友だち追加への応答。挨拶して地点登録待ちへ遷移する。
func (o *Orchestrator) OnFollow(ctx context.Context, userID string) []messaging_api.MessageInterface {
	if err := o.store.SetState(ctx, userID, user.StateAwaitingLocation); err != nil {
		o.logger.Error("set state on follow", "user", userID, "error", err)
	}
	return []messaging_api.MessageInterface{lineutil.NewTextMessage(greetingText)}
}

// OnPostback はポストバックイベントへの応答。
func (o *Orchestrator) OnPostback(ctx context.Context, userID, data string) []messaging_api.MessageInterface {
	if data == PostbackChangeLocation {
		return o.startLocationChange(ctx, userID)
	}
	return nil
}

// OnText はテキストメッセージへの応答。
func (o *Orchestrator) OnText(ctx context.Context, userID, text string) []messaging_api.MessageInterface {
	trimmed := strings.TrimSpace(text)

	for _, kw := range changeLocationKeywords {
		if trimmed == kw {
			return o.startLocationChange(ctx, userID)
		}
	}

	state, err := o.store.State(ctx, userID)
	if err != nil {
		o.logger.Error("load state", "user", userID, "error", err)
		state = user.StateNormal
	}
	if state == user.StateAwaitingLocation {
		return o.registerLocation(ctx, userID, trimmed)
	}

	if strings.Contains(trimmed, "天気") {
		return o.replyForecast(ctx, userID)
	}

	return []messaging_api.MessageInterface{lineutil.NewTextMessage(helpText)}
}

func (o *Orchestrator) startLocationChange(ctx context.Context, userID string) []messaging_api.MessageInterface {
	if err := o.store.SetState(ctx, userID, user.StateAwaitingLocation); err != nil {
		o.logger.Error("set awaiting state", "user", userID, "error", err)
	}
	return []messaging_api.MessageInterface{lineutil.NewTextMessage(promptLocationText)}
}

// registerLocation は地点登録待ち中の入力を解決して保存する。
// 解決失敗は再入力を促し、待ち状態は維持する。
func (o *Orchestrator) registerLocation(ctx context.Context, userID, text string) []messaging_api.MessageInterface {
	res, err := o.resolver.Resolve(ctx, text)
	if err != nil {
		o.metrics.ResolutionFailed(resolutionOutcome(err))
		o.logger.Info("resolution miss", "user", userID, "query", text, "error", err)
		return []messaging_api.MessageInterface{lineutil.NewTextMessage(notFoundText)}
	}
	o.metrics.ResolutionSucceeded()

	loc := user.Location{
		PlaceName:  text,
		OfficeCode: res.OfficeCode,
		AreaCode:   res.AreaCode,
		AreaName:   res.AreaName,
	}
	if err := o.store.SetLocation(ctx, userID, loc); err != nil {
		o.logger.Error("save location", "user", userID, "error", err)
		return []messaging_api.MessageInterface{lineutil.NewTextMessage(apologyText)}
	}

	confirm := lineutil.WithChangeLocationQuickReply(lineutil.NewTextMessage(
		"「" + res.AreaName + "」を登録しました！\n「天気」と送ると今日の予報をお届けします。"))
	return []messaging_api.MessageInterface{confirm}
}

// replyForecast は登録地の予報カードを返す。
func (o *Orchestrator) replyForecast(ctx context.Context, userID string) []messaging_api.MessageInterface {
	loc, err := o.store.Location(ctx, userID)
	if errors.Is(err, user.ErrNotFound) {
		if err := o.store.SetState(ctx, userID, user.StateAwaitingLocation); err != nil {
			o.logger.Error("set awaiting state", "user", userID, "error", err)
		}
		return []messaging_api.MessageInterface{lineutil.NewTextMessage(notRegisteredText)}
	}
	if err != nil {
		o.logger.Error("load location", "user", userID, "error", err)
		return []messaging_api.MessageInterface{lineutil.NewTextMessage(apologyText)}
	}

	msg, err := o.ForecastMessage(ctx, *loc)
	if err != nil {
		// 予報の取得・解釈の失敗は謝罪テキストに変換して終わり。
		o.logger.Warn("forecast unavailable", "user", userID, "office", loc.OfficeCode, "error", err)
		return []messaging_api.MessageInterface{lineutil.NewTextMessage(apologyText)}
	}
	return []messaging_api.MessageInterface{msg}
}

// ForecastMessage は登録地1件分の予報カードを組み立てる。
// 対話応答とデイリー通知の両方から使う。
func (o *Orchestrator) ForecastMessage(ctx context.Context, loc user.Location) (messaging_api.MessageInterface, error) {
	doc, err := o.forecasts.Fetch(ctx, loc.OfficeCode)
	if err != nil {
		return nil, err
	}
	summary, err := forecast.Summarize(doc, loc.AreaCode)
	if err != nil {
		return nil, err
	}
	return lineutil.NewForecastFlex(summary, loc.AreaName, o.clock.Now()), nil
}

func resolutionOutcome(err error) string {
	switch {
	case errors.Is(err, area.ErrGeocodeMiss):
		return "geocode_miss"
	case errors.Is(err, area.ErrPrefectureUnmapped):
		return "prefecture_unmapped"
	case errors.Is(err, area.ErrOfficeNotFound):
		return "office_not_found"
	case errors.Is(err, area.ErrNoSubAreas):
		return "no_sub_areas"
	default:
		return "other"
	}
}
