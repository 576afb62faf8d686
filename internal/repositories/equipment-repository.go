package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "ppe-tracker/internal/infrastructure/bd"
	"ppe-tracker/internal/entities"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/types"
)

const (
	equipmentTable  = "equipment e"
	equipmentFields = "e.id, e.custom_identifier, e.brand, e.model, e.serial_number, e.size, e.color, " +
		"e.purchase_date, e.manufacture_date, e.commission_date, e.inspection_interval_months, " +
		"e.equipment_type_id, e.created_at, e.updated_at, COALESCE(et.name, '')"
	equipmentTypeJoin = "equipment_types et ON et.id = e.equipment_type_id"
)

// allowedEquipmentFields whitelists filter[...] and sort[...] keys.
var allowedEquipmentFields = map[string]string{
	"id":                         "e.id",
	"custom_identifier":          "e.custom_identifier",
	"brand":                      "e.brand",
	"model":                      "e.model",
	"equipment_type_id":          "e.equipment_type_id",
	"inspection_interval_months": "e.inspection_interval_months",
	"commission_date":            "e.commission_date",
	"purchase_date":              "e.purchase_date",
	"created_at":                 "e.created_at",
}

var equipmentSearchColumns = []string{"e.custom_identifier", "e.brand", "e.model", "e.serial_number"}

type EquipmentRepositoryInterface interface {
	ListAll(ctx context.Context) ([]entities.Equipment, error)
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	ExistsByCustomIdentifier(ctx context.Context, customIdentifier string) (bool, error)
	Create(ctx context.Context, e entities.Equipment) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Equipment) error
	Delete(ctx context.Context, id uint64) error
	CountByType(ctx context.Context) ([]types.DashboardCountByGroup, error)
}

type equipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

func (r *equipmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

// dbEquipment mirrors one row; dates go through pgtype.Date.
type dbEquipment struct {
	ID                       uint64
	CustomIdentifier         string
	Brand                    string
	Model                    string
	SerialNumber             string
	Size                     null.String
	Color                    null.String
	PurchaseDate             pgtype.Date
	ManufactureDate          pgtype.Date
	CommissionDate           pgtype.Date
	InspectionIntervalMonths int
	EquipmentTypeID          uint64
	CreatedAt                time.Time
	UpdatedAt                time.Time
	EquipmentTypeName        string
}

func (d *dbEquipment) ToEntity() entities.Equipment {
	e := entities.Equipment{
		ID:                       d.ID,
		CustomIdentifier:         d.CustomIdentifier,
		Brand:                    d.Brand,
		Model:                    d.Model,
		SerialNumber:             d.SerialNumber,
		Size:                     d.Size,
		Color:                    d.Color,
		PurchaseDate:             fromPgDate(d.PurchaseDate),
		ManufactureDate:          fromPgDate(d.ManufactureDate),
		CommissionDate:           fromPgDate(d.CommissionDate),
		InspectionIntervalMonths: d.InspectionIntervalMonths,
		EquipmentTypeID:          d.EquipmentTypeID,
		EquipmentTypeName:        d.EquipmentTypeName,
	}
	e.CreatedAt = d.CreatedAt
	e.UpdatedAt = d.UpdatedAt
	return e
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var d dbEquipment
	err := row.Scan(
		&d.ID, &d.CustomIdentifier, &d.Brand, &d.Model, &d.SerialNumber,
		&d.Size, &d.Color,
		&d.PurchaseDate, &d.ManufactureDate, &d.CommissionDate,
		&d.InspectionIntervalMonths, &d.EquipmentTypeID,
		&d.CreatedAt, &d.UpdatedAt, &d.EquipmentTypeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan equipment: %w", err)
	}
	e := d.ToEntity()
	return &e, nil
}

func (r *equipmentRepository) selectBuilder() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(equipmentFields).
		From(equipmentTable).
		LeftJoin(equipmentTypeJoin)
}

func (r *equipmentRepository) queryList(ctx context.Context, builder sq.SelectBuilder) ([]entities.Equipment, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build equipment list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func (r *equipmentRepository) ListAll(ctx context.Context) ([]entities.Equipment, error) {
	return r.queryList(ctx, r.selectBuilder().OrderBy("e.id ASC"))
}

func (r *equipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From(equipmentTable)
	countBuilder = db.ApplySearch(countBuilder, filter.Search, equipmentSearchColumns...)
	countBuilder = db.ApplyFilters(countBuilder, filter, allowedEquipmentFields)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build equipment count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count equipment: %w", err)
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	builder := db.ApplySearch(r.selectBuilder(), filter.Search, equipmentSearchColumns...)
	builder = db.ApplyListParams(builder, filter, allowedEquipmentFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("e.id ASC")
	}

	list, err := r.queryList(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *equipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindByID query: %w", err)
	}
	return scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *equipmentRepository) ExistsByCustomIdentifier(ctx context.Context, customIdentifier string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM equipment WHERE custom_identifier = $1)", customIdentifier,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check custom identifier: %w", err)
	}
	return exists, nil
}

func (r *equipmentRepository) Create(ctx context.Context, e entities.Equipment) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert("equipment").
		Columns("custom_identifier", "brand", "model", "serial_number", "size", "color",
			"purchase_date", "manufacture_date", "commission_date",
			"inspection_interval_months", "equipment_type_id", "created_at", "updated_at").
		Values(e.CustomIdentifier, e.Brand, e.Model, e.SerialNumber, e.Size, e.Color,
			toPgDate(e.PurchaseDate), toPgDate(e.ManufactureDate), toPgDate(e.CommissionDate),
			e.InspectionIntervalMonths, e.EquipmentTypeID, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build equipment insert: %w", err)
	}

	var newID uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		return 0, r.translateWriteError(err, e)
	}
	return newID, nil
}

func (r *equipmentRepository) Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Equipment) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Update("equipment").
		Set("custom_identifier", e.CustomIdentifier).
		Set("brand", e.Brand).
		Set("model", e.Model).
		Set("serial_number", e.SerialNumber).
		Set("size", e.Size).
		Set("color", e.Color).
		Set("purchase_date", toPgDate(e.PurchaseDate)).
		Set("manufacture_date", toPgDate(e.ManufactureDate)).
		Set("commission_date", toPgDate(e.CommissionDate)).
		Set("inspection_interval_months", e.InspectionIntervalMonths).
		Set("equipment_type_id", e.EquipmentTypeID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build equipment update: %w", err)
	}

	result, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return r.translateWriteError(err, e)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) CountByType(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT COALESCE(et.name, '-') AS group_name, COUNT(e.id)
		FROM equipment e
		LEFT JOIN equipment_types et ON et.id = e.equipment_type_id
		GROUP BY et.name
		ORDER BY COUNT(e.id) DESC, et.name`)
	if err != nil {
		return nil, fmt.Errorf("count equipment by type: %w", err)
	}
	defer rows.Close()

	result := make([]types.DashboardCountByGroup, 0)
	for rows.Next() {
		var g types.DashboardCountByGroup
		if err := rows.Scan(&g.GroupName, &g.Count); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *equipmentRepository) translateWriteError(err error, e entities.Equipment) error {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("equipment %q already exists: %w", e.CustomIdentifier, apperrors.ErrConflict)
	case pgForeignKeyViolation:
		return apperrors.NewInvalidInputError("equipment type %d does not exist", e.EquipmentTypeID)
	case pgCheckViolation:
		return apperrors.NewInvalidInputError("inspection interval must be at least 1 month")
	}
	r.logger.Error("equipment write failed", zap.Error(err))
	return fmt.Errorf("write equipment: %w", err)
}
