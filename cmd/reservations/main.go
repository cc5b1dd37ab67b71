package main

import (
	"hotelbooking/internal/catalog/cache"
	catalogevents "hotelbooking/internal/catalog/events"
	catalogrepo "hotelbooking/internal/catalog/repository"
	catalogservice "hotelbooking/internal/catalog/service"
	"hotelbooking/internal/reservations/events"
	"hotelbooking/internal/reservations/handler"
	"hotelbooking/internal/reservations/repository"
	"hotelbooking/internal/reservations/service"
	"hotelbooking/internal/reservations/validator"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/kafka"
	kafka_config "hotelbooking/pkg/kafka/config"
	kafkamw "hotelbooking/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	tokens, err := auth.NewTokens(cfg.SealingKey())
	if err != nil {
		cfg.Log.Fatal("Failed to initialize token sealer", "error", err)
	}

	cfg.Log.Info("Starting Reservations service")
	serverApp := app.NewApplication(cfg)

	catalog := catalogservice.NewRoomCatalog(
		catalogrepo.NewMongoCatalogRepository(cfg),
		cfg.CatalogCacheTTL,
		cfg.Log,
	)
	if cfg.CatalogCacheTTL > 0 {
		serverApp.AddWorker("catalog-cache-janitor", cache.NewJanitor(cfg.CatalogCacheTTL, catalog.PurgeExpired, cfg.Log))
	}

	var metrics *kafkamw.Metrics
	publisher := events.NewNoopPublisher()
	if cfg.KafkaEnabled {
		metrics = kafkamw.NewMetrics()
		publisher = initKafka(cfg, serverApp, catalog, metrics)
	}

	reservationService := initServices(cfg, catalog, publisher)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, cfg.Log), tokens, metrics)
	serverApp.Run()
}

func initServices(cfg *config.Config, catalog catalogservice.RoomCatalog, publisher events.Publisher) service.ReservationService {
	store := service.NewReservationStore(repository.NewMongoReservationRepository(cfg), catalog, cfg)
	locker := service.NewRoomLocker(repository.NewRoomLockRepository(cfg), cfg)
	checker := service.NewAvailabilityChecker(catalog, store, locker, cfg)

	reservationService := service.NewReservationService(
		checker,
		store,
		validator.NewReservationValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}

// initKafka wires the reservation events producer and the room events consumer.
func initKafka(cfg *config.Config, serverApp *app.Application, catalog catalogservice.RoomCatalog, metrics *kafkamw.Metrics) events.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationEventsTopic, "", cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err, "topic", cfg.ReservationEventsTopic)
	}
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.RoomEventsTopic,
		cfg.RoomEventsGroupID,
		"",
		catalogevents.NewRoomEventHandler(catalog, cfg.Log),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err, "topic", cfg.RoomEventsTopic)
	}

	if kafkaCfg.EnableMiddleware {
		producer.Use(metrics.ProducerMiddleware())
		producer.Use(kafkamw.LoggingProducerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
		consumer.Use(kafkamw.LoggingConsumerMiddleware(cfg.Log))
	}

	serverApp.AddCloser("reservation-events-producer", producer)
	serverApp.AddWorker("room-events-consumer", consumer)

	cfg.Log.Info("Kafka wired",
		"reservation_events_topic", cfg.ReservationEventsTopic,
		"room_events_topic", cfg.RoomEventsTopic,
	)
	return events.NewKafkaPublisher(producer, cfg.Log)
}
