package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"hotelbooking/pkg/kafka"
)

// Metrics counts publish and consume outcomes. One instance is shared by the
// producer and consumer of a process and exposed through the readiness endpoint.
type Metrics struct {
	published       atomic.Int64
	publishedFailed atomic.Int64
	publishNanos    atomic.Int64

	consumed       atomic.Int64
	consumedFailed atomic.Int64
	consumeNanos   atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

type Snapshot struct {
	Published          int64  `json:"published"`
	PublishedFailed    int64  `json:"published_failed"`
	AvgPublishDuration string `json:"avg_publish_duration"`
	Consumed           int64  `json:"consumed"`
	ConsumedFailed     int64  `json:"consumed_failed"`
	AvgConsumeDuration string `json:"avg_consume_duration"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Published:          m.published.Load(),
		PublishedFailed:    m.publishedFailed.Load(),
		AvgPublishDuration: average(m.publishNanos.Load(), m.published.Load()+m.publishedFailed.Load()).String(),
		Consumed:           m.consumed.Load(),
		ConsumedFailed:     m.consumedFailed.Load(),
		AvgConsumeDuration: average(m.consumeNanos.Load(), m.consumed.Load()+m.consumedFailed.Load()).String(),
	}
}

func average(totalNanos, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(totalNanos / count)
}

func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.publishNanos.Add(int64(time.Since(start)))

		if err != nil {
			m.publishedFailed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}

func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.consumeNanos.Add(int64(time.Since(start)))

		if err != nil {
			m.consumedFailed.Add(1)
		} else {
			m.consumed.Add(1)
		}
		return err
	}
}
