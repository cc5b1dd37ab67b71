package cache

import (
	"context"
	"hotelbooking/pkg/logger"
	"time"
)

// Janitor drops expired entries on a fixed interval so keys that are never
// read again do not pile up. It runs as an application background worker.
type Janitor struct {
	interval time.Duration
	purge    func() int
	log      *logger.Logger
}

func NewJanitor(interval time.Duration, purge func() int, log *logger.Logger) *Janitor {
	return &Janitor{
		interval: interval,
		purge:    purge,
		log:      log,
	}
}

// Start blocks until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := j.purge(); removed > 0 {
				j.log.Debug("Purged expired catalog cache entries", "removed", removed)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (j *Janitor) Close() error {
	return nil
}
