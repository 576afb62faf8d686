package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	db "ppe-tracker/internal/infrastructure/bd"
	"ppe-tracker/internal/entities"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/types"
)

const (
	equipmentTypeTable  = "equipment_types"
	equipmentTypeFields = "id, name, description, created_at, updated_at"
)

var allowedEquipmentTypeFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
}

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error)
	FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error)
	FindByName(ctx context.Context, name string) (*entities.EquipmentType, error)
	CreateEquipmentType(ctx context.Context, et entities.EquipmentType) (*entities.EquipmentType, error)
	UpdateEquipmentType(ctx context.Context, id uint64, et entities.EquipmentType) (*entities.EquipmentType, error)
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type equipmentTypeRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool) EquipmentTypeRepositoryInterface {
	return &equipmentTypeRepository{storage: storage}
}

func scanEquipmentType(row pgx.Row) (*entities.EquipmentType, error) {
	var et entities.EquipmentType
	if err := row.Scan(&et.ID, &et.Name, &et.Description, &et.CreatedAt, &et.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan equipment type: %w", err)
	}
	return &et, nil
}

func (r *equipmentTypeRepository) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := db.ApplySearch(psql.Select("COUNT(*)").From(equipmentTypeTable), filter.Search, "name")
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipment types: %w", err)
	}
	if total == 0 {
		return []entities.EquipmentType{}, 0, nil
	}

	builder := db.ApplySearch(psql.Select(equipmentTypeFields).From(equipmentTypeTable), filter.Search, "name")
	builder = db.ApplyListParams(builder, filter, allowedEquipmentTypeFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("name ASC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query equipment types: %w", err)
	}
	defer rows.Close()

	list := make([]entities.EquipmentType, 0)
	for rows.Next() {
		et, err := scanEquipmentType(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *et)
	}
	return list, total, rows.Err()
}

func (r *equipmentTypeRepository) findOne(ctx context.Context, where sq.Eq) (*entities.EquipmentType, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(equipmentTypeFields).From(equipmentTypeTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipmentType(r.storage.QueryRow(ctx, query, args...))
}

func (r *equipmentTypeRepository) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *equipmentTypeRepository) FindByName(ctx context.Context, name string) (*entities.EquipmentType, error) {
	return r.findOne(ctx, sq.Eq{"name": name})
}

func (r *equipmentTypeRepository) CreateEquipmentType(ctx context.Context, et entities.EquipmentType) (*entities.EquipmentType, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(equipmentTypeTable).
		Columns("name", "description").
		Values(et.Name, et.Description).
		Suffix("RETURNING " + equipmentTypeFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanEquipmentType(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("equipment type %q: %w", et.Name, apperrors.ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

func (r *equipmentTypeRepository) UpdateEquipmentType(ctx context.Context, id uint64, et entities.EquipmentType) (*entities.EquipmentType, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Update(equipmentTypeTable).
		Set("name", et.Name).
		Set("description", et.Description).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + equipmentTypeFields).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanEquipmentType(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("equipment type %q: %w", et.Name, apperrors.ErrConflict)
		}
		return nil, err
	}
	return updated, nil
}

func (r *equipmentTypeRepository) DeleteEquipmentType(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment_types WHERE id = $1", id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("equipment type %d is still in use: %w", id, apperrors.ErrConflict)
		}
		return fmt.Errorf("delete equipment type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
