package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	// Reservation events are published once per booking and must reach every replica.
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	// Room events only invalidate cache entries, so a consumer that starts late skips history.
	DefaultConsumerStartOffset    = -1
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 1 * time.Second
	DefaultConsumerMaxRetries     = 3

	DefaultEnableMiddleware = true
)
