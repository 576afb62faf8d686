package seeders

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipments(ctx context.Context, db *pgxpool.Pool, today time.Time) error {
	log.Println("  - seeding sample 'equipment'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	typesMap, err := mapAllIDsByName(ctx, tx, "equipment_types")
	if err != nil {
		return fmt.Errorf("failed to load equipment type ids: %w", err)
	}

	query := `INSERT INTO equipment (custom_identifier, brand, model, serial_number, size, color,
				commission_date, inspection_interval_months, equipment_type_id)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
			  ON CONFLICT (custom_identifier) DO NOTHING`

	created := 0
	for _, e := range equipmentsData {
		typeID, ok := typesMap[e.TypeName]
		if !ok {
			log.Printf("WARNING: equipment type '%s' not found, skipping '%s'", e.TypeName, e.CustomIdentifier)
			continue
		}
		commission := today.AddDate(0, -e.CommissionedAgo, 0)
		tag, err := tx.Exec(ctx, query,
			e.CustomIdentifier, e.Brand, e.Model, e.SerialNumber, e.Size, e.Color,
			commission, e.IntervalMonths, typeID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert '%s': %w", e.CustomIdentifier, err)
		}
		created += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Printf("    - %d new items", created)
	return nil
}

func mapAllIDsByName(ctx context.Context, tx pgx.Tx, table string) (map[string]uint64, error) {
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT id, name FROM %s", pgx.Identifier{table}.Sanitize()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]uint64)
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		result[name] = id
	}
	return result, rows.Err()
}
