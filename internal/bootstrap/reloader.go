package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// StartReloader runs r.Reload on the seconds-enabled cron schedule. An empty schedule
// schedules nothing and returns nil. The caller stops the returned cron.
func StartReloader(schedule string, r Reloader, log *zap.Logger) (*cron.Cron, error) {
	if schedule == "" {
		return nil, nil
	}

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		// failures are logged by the service
		if swapped, err := r.Reload(ctx); err == nil && swapped {
			log.Info("scheduled reload installed a new dataset")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("reload schedule %q: %w", schedule, err)
	}

	c.Start()
	log.Info("dataset reload scheduler started", zap.String("schedule", schedule))
	return c, nil
}
