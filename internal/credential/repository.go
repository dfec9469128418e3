package credential

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"school-service/internal/metrics"

	"github.com/uptrace/bun"
)

var ErrCredentialNotFound = errors.New("credential not found")

type Repository interface {
	// Insert writes one credential row. A uniqueness violation is returned
	// unwrapped so the caller can classify it.
	Insert(ctx context.Context, cred *Credential) error
	// Replace swaps the credential for an identity inside one transaction.
	// This is the explicit regenerate path, never taken by bulk provisioning.
	Replace(ctx context.Context, cred *Credential) error
	GetByUserID(ctx context.Context, schoolCode, userID string) (*Credential, error)
	// ListUserIDs returns the natural IDs that already hold a credential for
	// the tenant and kind.
	ListUserIDs(ctx context.Context, schoolCode, kind string) ([]string, error)
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

func (r *repository) Insert(ctx context.Context, cred *Credential) error {
	start := time.Now()
	_, err := r.db.NewInsert().Model(cred).Exec(ctx)

	r.metrics.RecordQuery(ctx, "insert", "credentials", time.Since(start), err)

	return err
}

func (r *repository) Replace(ctx context.Context, cred *Credential) error {
	start := time.Now()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Credential)(nil)).
			Where("school_code = ?", cred.SchoolCode).
			Where("user_id = ?", cred.UserID).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(cred).Exec(ctx)
		return err
	})

	r.metrics.RecordQuery(ctx, "replace", "credentials", time.Since(start), err)

	return err
}

func (r *repository) GetByUserID(ctx context.Context, schoolCode, userID string) (*Credential, error) {
	start := time.Now()
	cred := new(Credential)
	err := r.db.NewSelect().
		Model(cred).
		Where("school_code = ?", schoolCode).
		Where("user_id = ?", userID).
		Where("is_active = ?", true).
		Scan(ctx)

	r.metrics.RecordQuery(ctx, "select", "credentials", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	return cred, nil
}

func (r *repository) ListUserIDs(ctx context.Context, schoolCode, kind string) ([]string, error) {
	start := time.Now()
	var userIDs []string
	err := r.db.NewSelect().
		Model((*Credential)(nil)).
		Column("user_id").
		Where("school_code = ?", schoolCode).
		Where("kind = ?", kind).
		Scan(ctx, &userIDs)

	r.metrics.RecordQuery(ctx, "select", "credentials", time.Since(start), err)

	return userIDs, err
}
