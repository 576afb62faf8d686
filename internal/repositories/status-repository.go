package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ppe-tracker/internal/entities"
	apperrors "ppe-tracker/pkg/errors"
)

const (
	statusTable  = "statuses"
	statusFields = "id, code, name, created_at"
)

type StatusRepositoryInterface interface {
	GetStatuses(ctx context.Context) ([]entities.Status, error)
	FindStatus(ctx context.Context, id uint64) (*entities.Status, error)
	FindByCode(ctx context.Context, code string) (*entities.Status, error)
	Upsert(ctx context.Context, code, name string) error
}

type statusRepository struct{ storage *pgxpool.Pool }

func NewStatusRepository(storage *pgxpool.Pool) StatusRepositoryInterface {
	return &statusRepository{storage: storage}
}

func scanStatus(row pgx.Row) (*entities.Status, error) {
	var s entities.Status
	if err := row.Scan(&s.ID, &s.Code, &s.Name, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan status: %w", err)
	}
	return &s, nil
}

func (r *statusRepository) GetStatuses(ctx context.Context) ([]entities.Status, error) {
	rows, err := r.storage.Query(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY id", statusFields, statusTable))
	if err != nil {
		return nil, fmt.Errorf("query statuses: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Status, 0)
	for rows.Next() {
		s, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

func (r *statusRepository) FindStatus(ctx context.Context, id uint64) (*entities.Status, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", statusFields, statusTable)
	return scanStatus(r.storage.QueryRow(ctx, query, id))
}

func (r *statusRepository) FindByCode(ctx context.Context, code string) (*entities.Status, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE code = $1", statusFields, statusTable)
	return scanStatus(r.storage.QueryRow(ctx, query, code))
}

// Upsert keeps the vocabulary in sync with the seeder.
func (r *statusRepository) Upsert(ctx context.Context, code, name string) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO statuses (code, name) VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name`, code, name)
	if err != nil {
		return fmt.Errorf("upsert status %s: %w", code, err)
	}
	return nil
}
