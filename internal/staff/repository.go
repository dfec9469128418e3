package staff

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrStaffNotFound = errors.New("staff member not found")

type Repository interface {
	InsertBatch(ctx context.Context, members []*Staff) error
	GetAll(ctx context.Context, schoolCode string) ([]Staff, error)
	GetByStaffID(ctx context.Context, schoolCode, staffID string) (*Staff, error)
	// MaxSequence returns the highest numeric suffix among staff IDs carrying
	// the given prefix, 0 when none exist.
	MaxSequence(ctx context.Context, schoolCode, prefix string) (int, error)
	// Existing returns the identifier/contact columns needed for duplicate
	// checks, fetched once per batch.
	Existing(ctx context.Context, schoolCode string) ([]Staff, error)
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

func (r *repository) InsertBatch(ctx context.Context, members []*Staff) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(&members).Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "staff", time.Since(start), err)

	return err
}

func (r *repository) GetAll(ctx context.Context, schoolCode string) ([]Staff, error) {
	start := time.Now()
	var members []Staff
	err := r.db.NewSelect().
		Model(&members).
		Where("school_code = ?", schoolCode).
		Order("staff_id ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "staff", time.Since(start), err)

	return members, err
}

func (r *repository) GetByStaffID(ctx context.Context, schoolCode, staffID string) (*Staff, error) {
	start := time.Now()
	member := new(Staff)
	err := r.db.NewSelect().
		Model(member).
		Where("school_code = ?", schoolCode).
		Where("staff_id = ?", staffID).
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "staff", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return member, nil
}

func (r *repository) MaxSequence(ctx context.Context, schoolCode, prefix string) (int, error) {
	start := time.Now()
	var max int
	err := r.db.NewSelect().
		Model((*Staff)(nil)).
		ColumnExpr("coalesce(max(cast(substring(staff_id from ?) as integer)), 0)", len(prefix)+1).
		Where("school_code = ?", schoolCode).
		Where("staff_id LIKE ?", prefix+"%").
		// hand-entered IDs like STF12B must not break the cast
		Where("substring(staff_id from ?) ~ '^[0-9]+$'", len(prefix)+1).
		Scan(ctx, &max)

	r.metrics.RecordQuery(ctx, "select", "staff", time.Since(start), err)

	return max, err
}

func (r *repository) Existing(ctx context.Context, schoolCode string) ([]Staff, error) {
	start := time.Now()
	var members []Staff
	err := r.db.NewSelect().
		Model(&members).
		Column("staff_id", "email", "phone", "aadhaar", "designation").
		Where("school_code = ?", schoolCode).
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "staff", time.Since(start), err)

	return members, err
}
