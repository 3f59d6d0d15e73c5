// notifier は登録済み利用者へ今日の予報をプッシュ送信する。
// 既定では1回実行して終了する（外部cronからの起動を想定）。
// -daemon を付けるとプロセス内でcron式に従って毎日実行する。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Nyukimin/otenkibot/internal/adapter/config"
	"github.com/Nyukimin/otenkibot/internal/adapter/line"
	"github.com/Nyukimin/otenkibot/internal/application/bot"
	"github.com/Nyukimin/otenkibot/internal/application/resolver"
	"github.com/Nyukimin/otenkibot/internal/infrastructure/geocoding"
	"github.com/Nyukimin/otenkibot/internal/infrastructure/jma"
	"github.com/Nyukimin/otenkibot/internal/infrastructure/persistence/sqlite"
	"github.com/Nyukimin/otenkibot/internal/logging"
	"github.com/Nyukimin/otenkibot/internal/observability"
	"github.com/Nyukimin/otenkibot/internal/scheduler"
)

func main() {
	daemon := flag.Bool("daemon", false, "cron式に従ってプロセス内で定期実行する")
	flag.Parse()

	if err := run(*daemon); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(daemon bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	metrics := observability.NewMetrics(prometheus.NewRegistry())

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	geocoder := geocoding.NewClient(cfg.OpenWeatherAPIKey, cfg.HTTPTimeout, logger)
	jmaClient := jma.NewClient(cfg.HTTPTimeout, logger)
	datasets := jma.NewCachedProvider(jmaClient)
	areaResolver := resolver.New(geocoder, datasets, logger)

	clock := clockwork.NewRealClock()
	orchestrator := bot.New(store, areaResolver, jmaClient, clock, logger, metrics)

	sender, err := line.NewSender(cfg.ChannelToken)
	if err != nil {
		return err
	}

	n := &notifier{
		store:        store,
		orchestrator: orchestrator,
		sender:       sender,
		logger:       logger,
		metrics:      metrics,
	}

	if !daemon {
		return n.runOnce(context.Background())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return scheduler.New(clock, logger).Run(ctx, cfg.NotifyCron, n.runOnce)
}

type notifier struct {
	store        *sqlite.Store
	orchestrator *bot.Orchestrator
	sender       *line.Sender
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// runOnce は登録利用者全員に予報を送る。個別の失敗は記録して続行する。
func (n *notifier) runOnce(ctx context.Context) error {
	records, err := n.store.ListRegistered(ctx)
	if err != nil {
		return err
	}
	n.logger.Info("daily forecast push starting", "users", len(records))

	for _, r := range records {
		msg, err := n.orchestrator.ForecastMessage(ctx, *r.Location)
		if err != nil {
			n.metrics.PushFailed()
			n.logger.Warn("forecast build failed", "user", r.UserID, "error", err)
			continue
		}
		if err := n.sender.Push(r.UserID, []messaging_api.MessageInterface{msg}); err != nil {
			n.metrics.PushFailed()
			n.logger.Warn("push failed", "user", r.UserID, "error", err)
			continue
		}
		n.metrics.PushSent()
	}

	n.logger.Info("daily forecast push finished")
	return nil
}
