package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ppe-tracker/internal/entities"
	"ppe-tracker/pkg/utils"
)

type AdminSeed struct {
	FullName string
	Email    string
	Password string
}

// seedAdmin creates the first administrator unless the email is taken.
func seedAdmin(ctx context.Context, db *pgxpool.Pool, admin AdminSeed) error {
	log.Printf("  - creating administrator '%s'...", admin.Email)

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", admin.Email).Scan(&userID)
	if err == nil {
		log.Println("    - administrator already exists, skipping")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lookup of existing administrator failed: %w", err)
	}

	hashedPassword, err := utils.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (full_name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := db.QueryRow(ctx, query, admin.FullName, admin.Email, hashedPassword, entities.RoleAdmin).Scan(&userID); err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	log.Printf("    - administrator created with id %d", userID)
	return nil
}
