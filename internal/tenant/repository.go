package tenant

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrTenantNotFound = errors.New("school not found")

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Tenant, error)
	Create(ctx context.Context, t *Tenant) (*Tenant, error)
}

type repository struct {
	db      *bun.DB
	metrics *metrics.Metrics
}

func NewRepository(db *bun.DB, m *metrics.Metrics) Repository {
	return &repository{
		db:      db,
		metrics: m,
	}
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Tenant, error) {
	start := time.Now()
	t := new(Tenant)
	err := r.db.NewSelect().
		Model(t).
		Where("code = ?", code).
		Where("active = ?", true).
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "schools", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *repository) Create(ctx context.Context, t *Tenant) (*Tenant, error) {
	start := time.Now()
	_, err := r.db.NewInsert().Model(t).Returning("*").Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "schools", time.Since(start), err)

	if err != nil {
		return nil, err
	}
	return t, nil
}
