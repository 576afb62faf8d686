package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	db "ppe-tracker/internal/infrastructure/bd"
	"ppe-tracker/internal/entities"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/types"
)

const (
	userTable  = "users"
	userFields = "id, full_name, email, password_hash, role, created_at, updated_at"
)

var allowedUserFields = map[string]string{
	"id":         "id",
	"role":       "role",
	"full_name":  "full_name",
	"email":      "email",
	"created_at": "created_at",
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, u entities.User) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := db.ApplySearch(psql.Select("COUNT(*)").From(userTable), filter.Search, "full_name", "email")
	countBuilder = db.ApplyFilters(countBuilder, filter, allowedUserFields)
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	builder := db.ApplySearch(psql.Select(userFields).From(userTable), filter.Search, "full_name", "email")
	builder = db.ApplyListParams(builder, filter, allowedUserFields)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("id ASC")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", userFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

// FindByEmail matches case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(email) = $1", userFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserRepository) CreateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Insert(userTable).
		Columns("full_name", "email", "password_hash", "role").
		Values(u.FullName, strings.ToLower(strings.TrimSpace(u.Email)), u.Password, u.Role).
		Suffix("RETURNING " + userFields).
		ToSql()
	if err != nil {
		return nil, err
	}

	created, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("user %s: %w", u.Email, apperrors.ErrConflict)
		}
		r.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}
	return created, nil
}
