package schedule

import (
	"context"
	"log/slog"
	"time"
)

type Task interface {
	Run(ctx context.Context) error
	Name() string
}

// IntervalRunner 按固定周期重复执行任务直到 ctx 取消
// 单次失败只记录日志, 不影响后续周期
type IntervalRunner struct {
	task     Task
	interval time.Duration
}

func NewIntervalRunner(task Task, interval time.Duration) *IntervalRunner {
	return &IntervalRunner{
		task:     task,
		interval: interval,
	}
}

func (r *IntervalRunner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.task.Run(ctx); err != nil {
			slog.Error("task run failed", "task", r.task.Name(), "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
