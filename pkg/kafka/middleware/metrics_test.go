package kafka_middleware

import (
	"context"
	"errors"
	"hotelbooking/pkg/kafka"
	"testing"
)

func TestMetrics_Producer(t *testing.T) {
	m := NewMetrics()
	mw := m.ProducerMiddleware()

	ok := func(ctx context.Context, msg kafka.Message) error { return nil }
	fail := func(ctx context.Context, msg kafka.Message) error { return errors.New("broker down") }

	_ = mw(context.Background(), kafka.Message{}, ok)
	_ = mw(context.Background(), kafka.Message{}, ok)
	_ = mw(context.Background(), kafka.Message{}, fail)

	snap := m.Snapshot()
	if snap.Published != 2 || snap.PublishedFailed != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestMetrics_Consumer(t *testing.T) {
	m := NewMetrics()
	mw := m.ConsumerMiddleware()

	_ = mw(context.Background(), kafka.Message{}, func(ctx context.Context, msg kafka.Message) error { return nil })

	snap := m.Snapshot()
	if snap.Consumed != 1 || snap.ConsumedFailed != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestMetrics_EmptyAverages(t *testing.T) {
	snap := NewMetrics().Snapshot()
	if snap.AvgPublishDuration != "0s" || snap.AvgConsumeDuration != "0s" {
		t.Errorf("empty averages should be 0s, got %+v", snap)
	}
}
