package config

import (
	"hotelbooking/pkg/logger"
	"time"
)

const (
	DefaultMongoURI          = "mongodb://localhost:27017/?replicaSet=rs0"
	DefaultMongoDatabaseName = "hotelbooking"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = logger.INFO
	DefaultLogFormat = logger.JSON

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLockTTL                     = 45 * time.Second
	DefaultLockWaitTimeout             = 3 * time.Second
	DefaultLockRetryInterval           = 50 * time.Millisecond
	DefaultAllowZeroLengthReservations = true
	DefaultCatalogCacheTTL             = 1 * time.Minute

	DefaultKafkaEnabled           = false
	DefaultReservationEventsTopic = "reservation-events"
	DefaultRoomEventsTopic        = "room-events"
	DefaultRoomEventsGroupID      = "reservations-catalog"
)
