package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/golang-sql/civil"
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
	inspectionTable  = "inspections i"
	inspectionFields = "i.id, i.equipment_id, i.inspection_date, i.inspector_id, i.result_status_id, i.notes, i.created_at, " +
		"COALESCE(e.custom_identifier, ''), COALESCE(u.full_name, ''), COALESCE(s.code, ''), COALESCE(s.name, '')"
)

var allowedInspectionFields = map[string]string{
	"id":               "i.id",
	"equipment_id":     "i.equipment_id",
	"inspector_id":     "i.inspector_id",
	"result_status_id": "i.result_status_id",
	"inspection_date":  "i.inspection_date",
	"created_at":       "i.created_at",
}

type InspectionRepositoryInterface interface {
	ListForEquipment(ctx context.Context, equipmentID uint64) ([]entities.Inspection, error)
	GetInspections(ctx context.Context, filter types.Filter) ([]entities.Inspection, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Inspection, error)
	Create(ctx context.Context, tx pgx.Tx, i entities.Inspection) (uint64, error)
	LatestDates(ctx context.Context) (map[uint64]civil.Date, error)
	LatestDateFor(ctx context.Context, equipmentID uint64) (*civil.Date, error)
	Recent(ctx context.Context, limit uint64) ([]entities.Inspection, error)
}

type inspectionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInspectionRepository(storage *pgxpool.Pool, logger *zap.Logger) InspectionRepositoryInterface {
	return &inspectionRepository{storage: storage, logger: logger}
}

func scanInspection(row pgx.Row) (*entities.Inspection, error) {
	var (
		i     entities.Inspection
		date  pgtype.Date
		notes null.String
	)
	err := row.Scan(
		&i.ID, &i.EquipmentID, &date, &i.InspectorID, &i.ResultStatusID, &notes, &i.CreatedAt,
		&i.EquipmentIdentifier, &i.InspectorName, &i.ResultStatusCode, &i.ResultStatusName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan inspection: %w", err)
	}
	if d := fromPgDate(date); d != nil {
		i.InspectionDate = *d
	}
	i.Notes = notes
	return &i, nil
}

func (r *inspectionRepository) selectBuilder() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select(inspectionFields).
		From(inspectionTable).
		LeftJoin("equipment e ON e.id = i.equipment_id").
		LeftJoin("users u ON u.id = i.inspector_id").
		LeftJoin("statuses s ON s.id = i.result_status_id")
}

func (r *inspectionRepository) queryList(ctx context.Context, builder sq.SelectBuilder) ([]entities.Inspection, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inspection list query: %w", err)
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inspections: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Inspection, 0)
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *i)
	}
	return list, rows.Err()
}

// ListForEquipment returns the history of one item, newest first.
func (r *inspectionRepository) ListForEquipment(ctx context.Context, equipmentID uint64) ([]entities.Inspection, error) {
	return r.queryList(ctx, r.selectBuilder().
		Where(sq.Eq{"i.equipment_id": equipmentID}).
		OrderBy("i.inspection_date DESC", "i.id DESC"))
}

// applyDateRange reads filter[date_from] and filter[date_to] (YYYY-MM-DD).
func applyDateRange(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if raw, ok := filter.Filter["date_from"].(string); ok {
		if d, err := civil.ParseDate(raw); err == nil {
			builder = builder.Where(sq.GtOrEq{"i.inspection_date": toPgDate(&d)})
		}
	}
	if raw, ok := filter.Filter["date_to"].(string); ok {
		if d, err := civil.ParseDate(raw); err == nil {
			builder = builder.Where(sq.LtOrEq{"i.inspection_date": toPgDate(&d)})
		}
	}
	return builder
}

func (r *inspectionRepository) GetInspections(ctx context.Context, filter types.Filter) ([]entities.Inspection, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := psql.Select("COUNT(*)").From(inspectionTable)
	countBuilder = db.ApplyFilters(countBuilder, filter, allowedInspectionFields)
	countBuilder = applyDateRange(countBuilder, filter)

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build inspection count query: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inspections: %w", err)
	}
	if total == 0 {
		return []entities.Inspection{}, 0, nil
	}

	builder := db.ApplyListParams(r.selectBuilder(), filter, allowedInspectionFields)
	builder = applyDateRange(builder, filter)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("i.inspection_date DESC", "i.id DESC")
	}

	list, err := r.queryList(ctx, builder)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *inspectionRepository) FindByID(ctx context.Context, id uint64) (*entities.Inspection, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inspection FindByID: %w", err)
	}
	return scanInspection(r.storage.QueryRow(ctx, query, args...))
}

func (r *inspectionRepository) Create(ctx context.Context, tx pgx.Tx, i entities.Inspection) (uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Insert("inspections").
		Columns("equipment_id", "inspection_date", "inspector_id", "result_status_id", "notes", "created_at").
		Values(i.EquipmentID, toPgDate(&i.InspectionDate), i.InspectorID, i.ResultStatusID, i.Notes, sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build inspection insert: %w", err)
	}

	var q Querier = r.storage
	if tx != nil {
		q = tx
	}

	var newID uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&newID); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return 0, apperrors.NewInvalidInputError("inspection references a missing equipment, inspector or status")
		}
		return 0, fmt.Errorf("insert inspection: %w", err)
	}
	return newID, nil
}

// LatestDates returns the most recent inspection date of every inspected item.
func (r *inspectionRepository) LatestDates(ctx context.Context) (map[uint64]civil.Date, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT equipment_id, MAX(inspection_date) FROM inspections GROUP BY equipment_id")
	if err != nil {
		return nil, fmt.Errorf("query latest inspection dates: %w", err)
	}
	defer rows.Close()

	latest := make(map[uint64]civil.Date)
	for rows.Next() {
		var (
			id   uint64
			date pgtype.Date
		)
		if err := rows.Scan(&id, &date); err != nil {
			return nil, fmt.Errorf("scan latest inspection date: %w", err)
		}
		if d := fromPgDate(date); d != nil {
			latest[id] = *d
		}
	}
	return latest, rows.Err()
}

// LatestDateFor returns nil when the item was never inspected.
func (r *inspectionRepository) LatestDateFor(ctx context.Context, equipmentID uint64) (*civil.Date, error) {
	var date pgtype.Date
	err := r.storage.QueryRow(ctx,
		"SELECT MAX(inspection_date) FROM inspections WHERE equipment_id = $1", equipmentID,
	).Scan(&date)
	if err != nil {
		return nil, fmt.Errorf("query latest inspection date: %w", err)
	}
	return fromPgDate(date), nil
}

func (r *inspectionRepository) Recent(ctx context.Context, limit uint64) ([]entities.Inspection, error) {
	if limit == 0 {
		limit = 10
	}
	return r.queryList(ctx, r.selectBuilder().
		OrderBy("i.inspection_date DESC", "i.created_at DESC").
		Limit(limit))
}

