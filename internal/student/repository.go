package student

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrStudentNotFound = errors.New("student not found")

type Repository interface {
	InsertBatch(ctx context.Context, students []*Student) error
	GetAll(ctx context.Context, schoolCode string) ([]Student, error)
	GetByAdmissionNo(ctx context.Context, schoolCode, admissionNo string) (*Student, error)
	// MaxSequence returns the highest numeric suffix among admission numbers
	// carrying the given prefix, 0 when none exist.
	MaxSequence(ctx context.Context, schoolCode, prefix string) (int, error)
	// Existing returns the identifier/contact columns needed for duplicate
	// checks, fetched once per batch.
	Existing(ctx context.Context, schoolCode string) ([]Student, error)
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

func (r *repository) InsertBatch(ctx context.Context, students []*Student) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(&students).Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "students", time.Since(start), err)

	return err
}

func (r *repository) GetAll(ctx context.Context, schoolCode string) ([]Student, error) {
	start := time.Now()
	var students []Student
	err := r.db.NewSelect().
		Model(&students).
		Where("school_code = ?", schoolCode).
		Order("admission_no ASC").
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "students", time.Since(start), err)

	return students, err
}

func (r *repository) GetByAdmissionNo(ctx context.Context, schoolCode, admissionNo string) (*Student, error) {
	start := time.Now()
	student := new(Student)
	err := r.db.NewSelect().
		Model(student).
		Where("school_code = ?", schoolCode).
		Where("admission_no = ?", admissionNo).
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "students", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (r *repository) MaxSequence(ctx context.Context, schoolCode, prefix string) (int, error) {
	start := time.Now()
	var max int
	err := r.db.NewSelect().
		Model((*Student)(nil)).
		ColumnExpr("coalesce(max(cast(substring(admission_no from ?) as integer)), 0)", len(prefix)+1).
		Where("school_code = ?", schoolCode).
		Where("admission_no LIKE ?", prefix+"%").
		// hand-entered IDs like ADM12B must not break the cast
		Where("substring(admission_no from ?) ~ '^[0-9]+$'", len(prefix)+1).
		Scan(ctx, &max)

	r.metrics.RecordQuery(ctx, "select", "students", time.Since(start), err)

	return max, err
}

func (r *repository) Existing(ctx context.Context, schoolCode string) ([]Student, error) {
	start := time.Now()
	var students []Student
	err := r.db.NewSelect().
		Model(&students).
		Column("admission_no", "email", "phone", "aadhaar", "class").
		Where("school_code = ?", schoolCode).
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "students", time.Since(start), err)

	return students, err
}
