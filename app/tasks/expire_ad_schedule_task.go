package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freetic/freetic/app/database"
)

// ExpireAdScheduleTask disables the ad configuration once its display window
// has ended, so an expired ad doesn't linger as enabled in the admin view.
type ExpireAdScheduleTask struct {
	Task
	adRepo database.AdConfigRepository
}

func NewExpireAdScheduleTask(adRepo database.AdConfigRepository) *ExpireAdScheduleTask {
	return &ExpireAdScheduleTask{
		Task:   NewTask(TaskTypeExpireAdSchedule),
		adRepo: adRepo,
	}
}

func (t *ExpireAdScheduleTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	config, err := t.adRepo.Get()
	if err != nil {
		return fmt.Errorf("failed to get ad configuration: %w", err)
	}

	now := time.Now().UnixMilli()

	if !config.Enabled || config.EndAt == 0 || now <= config.EndAt {
		return nil
	}

	config.Enabled = false
	if err := t.adRepo.Put(config); err != nil {
		return fmt.Errorf("failed to disable expired ad: %w", err)
	}

	slog.Info("Task completed",
		"type", "ExpireAdSchedule",
		"duration", t.GetDuration(),
		"ended_at", config.EndAt)

	return nil
}
