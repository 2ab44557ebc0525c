package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// FieldworkerRepository defines directory access for fieldworkers.
type FieldworkerRepository interface {
	Create(ctx context.Context, worker *domain.Fieldworker) error
	Update(ctx context.Context, worker *domain.Fieldworker) error
	GetByID(ctx context.Context, id string) (*domain.Fieldworker, error)
	GetByIDForTenant(ctx context.Context, id, tenantID string) (*domain.Fieldworker, error)
	GetByEmail(ctx context.Context, email string) (*domain.Fieldworker, error)
}

type fieldworkerRepository struct {
	pool *pgxpool.Pool
}

// NewFieldworkerRepository returns a Postgres-backed implementation.
func NewFieldworkerRepository(pool *pgxpool.Pool) FieldworkerRepository {
	return &fieldworkerRepository{pool: pool}
}

const fieldworkerColumns = `id, tenant_id, name, email, password_hash, role, locale, active, created_at, updated_at`

func (r *fieldworkerRepository) Create(ctx context.Context, worker *domain.Fieldworker) error {
	const query = `
        INSERT INTO fieldworkers (tenant_id, name, email, password_hash, role, locale, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		worker.TenantID,
		worker.Name,
		worker.Email,
		worker.PasswordHash,
		worker.Role,
		worker.Locale,
		worker.Active,
	).Scan(&worker.ID, &worker.CreatedAt, &worker.UpdatedAt)
}

func (r *fieldworkerRepository) Update(ctx context.Context, worker *domain.Fieldworker) error {
	const query = `
        UPDATE fieldworkers SET name=$1, email=$2, password_hash=$3, role=$4, locale=$5, active=$6, updated_at=NOW()
        WHERE id=$7 AND tenant_id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		worker.Name,
		worker.Email,
		worker.PasswordHash,
		worker.Role,
		worker.Locale,
		worker.Active,
		worker.ID,
		worker.TenantID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fieldworkerRepository) GetByID(ctx context.Context, id string) (*domain.Fieldworker, error) {
	const query = `SELECT ` + fieldworkerColumns + ` FROM fieldworkers WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *fieldworkerRepository) GetByIDForTenant(ctx context.Context, id, tenantID string) (*domain.Fieldworker, error) {
	const query = `SELECT ` + fieldworkerColumns + ` FROM fieldworkers WHERE id=$1 AND tenant_id=$2`
	return r.scanOne(r.pool.QueryRow(ctx, query, id, tenantID))
}

func (r *fieldworkerRepository) GetByEmail(ctx context.Context, email string) (*domain.Fieldworker, error) {
	const query = `SELECT ` + fieldworkerColumns + ` FROM fieldworkers WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *fieldworkerRepository) scanOne(row pgx.Row) (*domain.Fieldworker, error) {
	var worker domain.Fieldworker
	if err := row.Scan(
		&worker.ID,
		&worker.TenantID,
		&worker.Name,
		&worker.Email,
		&worker.PasswordHash,
		&worker.Role,
		&worker.Locale,
		&worker.Active,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &worker, nil
}
