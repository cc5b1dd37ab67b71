package mongo

import (
	"context"
	"fmt"
	catalogrepo "hotelbooking/internal/catalog/repository"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"
)

// SeedHotel is one hotel of the development catalog together with its rooms.
type SeedHotel struct {
	Hotel model.Hotel
	Rooms []model.Room
}

// DevelopmentCatalog returns the hotels and rooms inserted by the seed step.
func DevelopmentCatalog() []SeedHotel {
	return []SeedHotel{
		{
			Hotel: model.Hotel{Title: "Harbour View", Description: "Small hotel on the old port"},
			Rooms: []model.Room{
				{Description: "Double room facing the harbour", Images: []string{"harbour/101-1.jpg", "harbour/101-2.jpg"}, Enabled: true},
				{Description: "Single room, courtyard side", Images: []string{"harbour/102-1.jpg"}, Enabled: true},
				{Description: "Attic suite, closed for renovation", Images: []string{}, Enabled: false},
			},
		},
		{
			Hotel: model.Hotel{Title: "Alpine Lodge", Description: "Mountain lodge next to the ski lift"},
			Rooms: []model.Room{
				{Description: "Family room with balcony", Images: []string{"alpine/1-1.jpg"}, Enabled: true},
			},
		},
	}
}

// CatalogCounter reports how many hotels exist; the seed only runs on an empty catalog.
type CatalogCounter interface {
	CountHotels(ctx context.Context) (int64, error)
}

// SeedCatalog inserts DevelopmentCatalog through the catalog repository. It is a
// no-op when the catalog already holds hotels.
func SeedCatalog(ctx context.Context, counter CatalogCounter, repo catalogrepo.CatalogRepository, log *logger.Logger) ([]SeedHotel, error) {
	count, err := counter.CountHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count hotels: %w", err)
	}
	if count > 0 {
		log.Info("Catalog already seeded", "hotels", count)
		return nil, nil
	}

	seeded := DevelopmentCatalog()
	for i := range seeded {
		hotel := &seeded[i].Hotel
		if err := repo.InsertHotel(ctx, hotel); err != nil {
			return nil, err
		}
		for j := range seeded[i].Rooms {
			room := &seeded[i].Rooms[j]
			room.HotelID = hotel.ID
			if err := repo.InsertRoom(ctx, room); err != nil {
				return nil, err
			}
			log.Info("Seeded room",
				"hotel", hotel.Title,
				"hotel_id", hotel.ID,
				"room_id", room.ID,
				"enabled", room.Enabled,
			)
		}
	}
	return seeded, nil
}

// CountHotels implements CatalogCounter on the migrator's database.
func (m *Migrator) CountHotels(ctx context.Context) (int64, error) {
	return m.db.Collection(catalogrepo.HotelsCollectionName).EstimatedDocumentCount(ctx)
}
