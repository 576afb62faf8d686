package seeders

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ppe-tracker/internal/repositories"
)

// SeedDictionaries fills the inspection result vocabulary and the equipment types.
func SeedDictionaries(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  seeding dictionaries...")

	if err := seedStatuses(ctx, repositories.NewStatusRepository(db)); err != nil {
		log.Fatalf("❌ statuses: %v", err)
	}
	if err := seedEquipmentTypes(ctx, db); err != nil {
		log.Fatalf("❌ equipment types: %v", err)
	}
	log.Println("✅ dictionaries done")
}

func SeedAdmin(ctx context.Context, db *pgxpool.Pool, admin AdminSeed) {
	log.Println("▶️  seeding administrator...")
	if err := seedAdmin(ctx, db, admin); err != nil {
		log.Fatalf("❌ administrator: %v", err)
	}
	log.Println("✅ administrator done")
}

// SeedSampleEquipment adds demo inventory spread over all alert states.
func SeedSampleEquipment(ctx context.Context, db *pgxpool.Pool) {
	log.Println("▶️  seeding sample equipment...")
	if err := seedEquipments(ctx, db, time.Now()); err != nil {
		log.Fatalf("❌ equipment: %v", err)
	}
	log.Println("✅ sample equipment done")
}
