package main

import (
	"context"
	catalogrepo "hotelbooking/internal/catalog/repository"
	mongoMigration "hotelbooking/internal/migrations/mongo"
	"hotelbooking/pkg/config"
	"time"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	cfg := config.Load(JobName)
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")
	defer cfg.GracefulShutdown()

	migrator := mongoMigration.NewMigrator(cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	if err := migrator.Run(ctx); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		return
	}

	if cfg.SeedCatalog {
		seeded, err := mongoMigration.SeedCatalog(ctx, migrator, catalogrepo.NewMongoCatalogRepository(cfg), cfg.Log)
		if err != nil {
			cfg.Log.Error("Catalog seed failed", "error", err)
			return
		}
		cfg.Log.Info("Catalog seed finished", "hotels", len(seeded))
	}

	cfg.Log.Info("Migration completed successfully")
}
