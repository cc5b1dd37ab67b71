package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvAuthSealingKey = "AUTH_SEALING_KEY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvLockTTL                     = "LOCK_TTL"
	EnvLockWaitTimeout             = "LOCK_WAIT_TIMEOUT"
	EnvLockRetryInterval           = "LOCK_RETRY_INTERVAL"
	EnvAllowZeroLengthReservations = "ALLOW_ZERO_LENGTH_RESERVATIONS"
	EnvCatalogCacheTTL             = "CATALOG_CACHE_TTL"

	EnvKafkaEnabled           = "KAFKA_ENABLED"
	EnvReservationEventsTopic = "RESERVATION_EVENTS_TOPIC"
	EnvRoomEventsTopic        = "ROOM_EVENTS_TOPIC"
	EnvRoomEventsGroupID      = "ROOM_EVENTS_GROUP_ID"

	EnvSeedCatalog = "SEED_CATALOG"
)
