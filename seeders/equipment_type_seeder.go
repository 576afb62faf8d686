package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipmentTypes(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding 'equipment_types'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO equipment_types (name, description) VALUES ($1, $2)
			  ON CONFLICT (name) DO NOTHING`

	for _, t := range equipmentTypesData {
		if _, err := tx.Exec(ctx, query, t.Name, t.Description); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
