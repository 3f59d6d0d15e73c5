// Package scheduler はcron式に基づく定期実行ループ。
// 毎分の刻みで式を評価し、該当した分にジョブを1回だけ実行する。
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adhocore/gronx"
	"github.com/jonboulle/clockwork"
)

// Job は発火時に呼ばれる処理。エラーは記録され、ループは続行する。
type Job func(ctx context.Context) error

// Scheduler はcron式で駆動する単一ジョブの実行器。
type Scheduler struct {
	gron   *gronx.Gronx
	clock  clockwork.Clock
	logger *slog.Logger
}

// New はSchedulerを作る。
func New(clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		gron:   gronx.New(),
		clock:  clock,
		logger: logger,
	}
}

// Validate はcron式の妥当性だけを検査する。
func (s *Scheduler) Validate(expr string) error {
	if !s.gron.IsValid(expr) {
		return fmt.Errorf("invalid cron expression: %q", expr)
	}
	return nil
}

// Run はctxが打ち切られるまでジョブを定期実行する。
// 1分ごとに式を評価するので、秒指定の式はサポートしない。
func (s *Scheduler) Run(ctx context.Context, expr string, job Job) error {
	if err := s.Validate(expr); err != nil {
		return err
	}

	ticker := s.clock.NewTicker(time.Minute)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "cron", expr)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping")
			return nil
		case <-ticker.Chan():
			due, err := s.gron.IsDue(expr, s.clock.Now())
			if err != nil {
				s.logger.Error("cron evaluation failed", "cron", expr, "error", err)
				continue
			}
			if !due {
				continue
			}
			if err := job(ctx); err != nil {
				s.logger.Error("scheduled job failed", "error", err)
			}
		}
	}
}
