package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"school-service/internal/config"
	"school-service/internal/metrics"
	"school-service/internal/tenant"
)

// Controller drives one provisioning request end to end: normalize,
// validate, allocate identifiers, insert identities in bounded batches, then
// issue credentials under the duplicate-safe upsert policy. It holds no
// state across calls and takes no locks; correctness under concurrent
// requests rests entirely on the store's uniqueness constraints.
type Controller struct {
	store   Store
	cfg     config.ProvisioningConfig
	gen     Generator
	metrics *metrics.Metrics
	events  Publisher
	logger  *slog.Logger
}

func NewController(store Store, cfg config.ProvisioningConfig, m *metrics.Metrics, events Publisher, logger *slog.Logger) *Controller {
	if events == nil {
		events = NopPublisher{}
	}
	return &Controller{
		store:   store,
		cfg:     cfg,
		gen:     Generator{Length: cfg.PasswordLength, Cost: cfg.BcryptCost},
		metrics: m,
		events:  events,
		logger:  logger,
	}
}

func (c *Controller) allocatorFor(kind Kind) Allocator {
	if kind == KindStaff {
		return Allocator{Prefix: c.cfg.StaffIDPrefix, Width: c.cfg.StaffIDWidth}
	}
	return Allocator{Prefix: c.cfg.StudentIDPrefix, Width: c.cfg.StudentIDWidth}
}

// RunImport processes one uploaded sheet. Rejected rows never reach the
// store; a failed batch fails only its own rows; credential uniqueness
// violations count as already provisioned. Pre-existing identities that
// still lack a credential are topped up at the end of the run.
func (c *Controller) RunImport(ctx context.Context, t *tenant.Tenant, kind Kind, rows []ImportRow, reveal bool) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	vctx, err := c.store.FetchContext(ctx, t, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch school context: %w", err)
	}

	res := &Result{Total: len(rows)}
	outcomes := make([]rowOutcome, 0, len(rows))
	valid := make([]*CandidateRecord, 0, len(rows))
	seenIDs := map[string]int{}
	rejected := 0

	for i, row := range rows {
		rec := Normalize(row, kind, i+1)
		out := Validate(rec, kind, vctx)

		// two sheet rows claiming the same identifier would race each other
		// inside this very import; the second one is rejected up front
		if rec.NaturalID != "" {
			if first, dup := seenIDs[rec.NaturalID]; dup {
				out.addError("natural_id", "identifier %s already used by row %d", rec.NaturalID, first)
			} else {
				seenIDs[rec.NaturalID] = rec.RowNum
			}
		}

		for _, w := range out.Warnings {
			res.Warnings = append(res.Warnings, RowWarning{Row: rec.RowNum, Field: w.Field, Message: w.Message})
		}
		if !out.Valid() {
			for _, e := range out.Errors {
				res.Errors = append(res.Errors, RowError{Row: rec.RowNum, Field: e.Field, Message: e.Message})
			}
			outcomes = append(outcomes, rowOutcome{row: rec.RowNum, status: StatusRejected})
			rejected++
			continue
		}
		valid = append(valid, rec)
	}
	res.Processed = len(valid)

	// Allocate identifiers for rows that did not bring their own. The max
	// sequence is read here, immediately before the writes, to keep the
	// race window with concurrent imports small.
	alloc := c.allocatorFor(kind)
	unassigned := 0
	for _, rec := range valid {
		if rec.NaturalID == "" {
			unassigned++
		}
	}
	if unassigned > 0 {
		maxSeq, err := c.store.MaxSequence(ctx, t, kind, alloc.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch max sequence: %w", err)
		}
		ids := alloc.Allocate(maxSeq, unassigned)
		next := 0
		for _, rec := range valid {
			if rec.NaturalID == "" {
				rec.NaturalID = ids[next]
				next++
			}
		}
	}

	// Insert identities in bounded batches. A failed batch fails only its
	// own rows; later batches still run.
	batchSize := c.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 500
	}
	inserted := make([]*CandidateRecord, 0, len(valid))
	insertFailed := 0
	for start := 0; start < len(valid); start += batchSize {
		end := start + batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		if err := c.store.InsertIdentities(ctx, t, kind, batch); err != nil {
			c.logger.ErrorContext(ctx, "identity batch insert failed",
				"school", t.Code, "kind", kind, "rows", len(batch), "error", err)
			for _, rec := range batch {
				res.Errors = append(res.Errors, RowError{Row: rec.RowNum, Message: err.Error()})
				outcomes = append(outcomes, rowOutcome{row: rec.RowNum, naturalID: rec.NaturalID, status: StatusInsertFailed})
				insertFailed++
			}
			continue
		}
		inserted = append(inserted, batch...)
	}

	// Credentials for the rows just inserted.
	credFailed := 0
	newIDs := map[string]bool{}
	for _, rec := range inserted {
		newIDs[rec.NaturalID] = true
		status := c.issueCredential(ctx, t, kind, rec.NaturalID, reveal, res, rec.RowNum)
		outcomes = append(outcomes, rowOutcome{row: rec.RowNum, naturalID: rec.NaturalID, status: status})
		if status == StatusCredentialFailed {
			credFailed++
		}
	}

	for _, o := range outcomes {
		switch o.status {
		case StatusRejected, StatusInsertFailed, StatusCredentialFailed:
			res.Failed++
		case StatusCreated:
			res.Success++
			res.Created++
		case StatusAlreadyExisted:
			res.Success++
			res.Skipped++
		}
	}

	// Top up pre-existing identities that never got a credential (a crash
	// between identity insert and credential insert leaves exactly this
	// state behind).
	c.fillGaps(ctx, t, kind, newIDs, reveal, res)

	c.metrics.RecordRowsImported(ctx, string(kind), res.Success)
	c.metrics.RecordRowsRejected(ctx, string(kind), rejected)
	c.metrics.RecordRowsFailed(ctx, string(kind), insertFailed)
	c.metrics.RecordCredentialsCreated(ctx, res.Created)
	c.metrics.RecordCredentialsSkipped(ctx, res.Skipped)
	c.metrics.RecordCredentialsFailed(ctx, credFailed)

	c.logger.InfoContext(ctx, "import finished",
		"school", t.Code, "kind", kind,
		"total", res.Total, "success", res.Success, "failed", res.Failed, "skipped", res.Skipped)

	c.events.ProvisioningCompleted(ctx, Event{
		SchoolCode: t.Code,
		Kind:       string(kind),
		Operation:  OpImport,
		Total:      res.Total,
		Created:    res.Created,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		FinishedAt: time.Now().UTC(),
	})

	return res, nil
}

// FillMissingCredentials issues a credential to every identity that lacks
// one. Safe to re-run and safe to run concurrently: the set difference only
// trims redundant work, the uniqueness constraint is what guarantees at most
// one credential per identity.
func (c *Controller) FillMissingCredentials(ctx context.Context, t *tenant.Tenant, kind Kind, reveal bool) (*Result, error) {
	identityIDs, err := c.store.IdentityIDs(ctx, t, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identities: %w", err)
	}
	credentialIDs, err := c.store.CredentialIDs(ctx, t, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch credentials: %w", err)
	}

	provisioned := make(map[string]bool, len(credentialIDs))
	for _, id := range credentialIDs {
		provisioned[id] = true
	}

	missing := make([]string, 0)
	for _, id := range identityIDs {
		if !provisioned[id] {
			missing = append(missing, id)
		}
	}

	res := &Result{Total: len(identityIDs), Processed: len(missing)}
	for _, id := range missing {
		switch c.issueCredential(ctx, t, kind, id, reveal, res, 0) {
		case StatusCreated:
			res.Created++
		case StatusAlreadyExisted:
			res.Skipped++
		case StatusCredentialFailed:
			res.Failed++
		}
	}

	c.metrics.RecordCredentialsCreated(ctx, res.Created)
	c.metrics.RecordCredentialsSkipped(ctx, res.Skipped)
	c.metrics.RecordCredentialsFailed(ctx, res.Failed)

	c.logger.InfoContext(ctx, "fill-missing-credentials finished",
		"school", t.Code, "kind", kind,
		"processed", res.Processed, "created", res.Created, "skipped", res.Skipped, "failed", res.Failed)

	c.events.ProvisioningCompleted(ctx, Event{
		SchoolCode: t.Code,
		Kind:       string(kind),
		Operation:  OpFillMissing,
		Total:      res.Total,
		Created:    res.Created,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		FinishedAt: time.Now().UTC(),
	})

	return res, nil
}

// RegenerateCredential replaces the credential of one identity with a fresh
// one. This is the explicit, intentional overwrite path; the bulk pipeline
// never replaces an existing credential.
func (c *Controller) RegenerateCredential(ctx context.Context, t *tenant.Tenant, kind Kind, naturalID string) (*IssuedCredential, error) {
	exists, err := c.store.HasIdentity(ctx, t, kind, naturalID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up identity: %w", err)
	}
	if !exists {
		return nil, ErrIdentityNotFound
	}

	plain, hash, err := c.gen.Generate()
	if err != nil {
		return nil, err
	}
	if err := c.store.ReplaceCredential(ctx, t, kind, naturalID, hash, plain); err != nil {
		return nil, fmt.Errorf("failed to replace credential: %w", err)
	}

	c.metrics.RecordCredentialsCreated(ctx, 1)
	c.logger.InfoContext(ctx, "credential regenerated", "school", t.Code, "kind", kind, "user_id", naturalID)

	c.events.ProvisioningCompleted(ctx, Event{
		SchoolCode: t.Code,
		Kind:       string(kind),
		Operation:  OpRegenerate,
		Total:      1,
		Created:    1,
		FinishedAt: time.Now().UTC(),
	})

	return &IssuedCredential{UserID: naturalID, Password: plain}, nil
}

// issueCredential generates and persists one credential, applying the
// duplicate-safe upsert policy: a uniqueness violation means another run
// already provisioned this identity and is reported as already-existed, not
// as an error. The caller owns the count bookkeeping.
func (c *Controller) issueCredential(ctx context.Context, t *tenant.Tenant, kind Kind, userID string, reveal bool, res *Result, row int) RowStatus {
	plain, hash, err := c.gen.Generate()
	if err != nil {
		c.logger.ErrorContext(ctx, "password generation failed", "school", t.Code, "user_id", userID, "error", err)
		res.Errors = append(res.Errors, RowError{Row: row, Message: "failed to generate password"})
		return StatusCredentialFailed
	}

	err = c.store.InsertCredential(ctx, t, kind, userID, hash, plain)
	switch {
	case err == nil:
		if reveal {
			res.Credentials = append(res.Credentials, IssuedCredential{UserID: userID, Password: plain})
		}
		return StatusCreated
	case IsUniqueViolation(err):
		return StatusAlreadyExisted
	default:
		c.logger.ErrorContext(ctx, "credential insert failed", "school", t.Code, "user_id", userID, "error", err)
		res.Errors = append(res.Errors, RowError{Row: row, Message: "failed to store credential: " + err.Error()})
		return StatusCredentialFailed
	}
}

// fillGaps issues credentials to identities that predate this import and
// still have none. Failures here are recorded but cannot fail the import.
func (c *Controller) fillGaps(ctx context.Context, t *tenant.Tenant, kind Kind, newIDs map[string]bool, reveal bool, res *Result) {
	identityIDs, err := c.store.IdentityIDs(ctx, t, kind)
	if err != nil {
		c.logger.WarnContext(ctx, "skipping credential top-up", "school", t.Code, "error", err)
		return
	}
	credentialIDs, err := c.store.CredentialIDs(ctx, t, kind)
	if err != nil {
		c.logger.WarnContext(ctx, "skipping credential top-up", "school", t.Code, "error", err)
		return
	}

	provisioned := make(map[string]bool, len(credentialIDs))
	for _, id := range credentialIDs {
		provisioned[id] = true
	}

	for _, id := range identityIDs {
		if provisioned[id] || newIDs[id] {
			continue
		}
		switch c.issueCredential(ctx, t, kind, id, reveal, res, 0) {
		case StatusCreated:
			res.Created++
		case StatusAlreadyExisted:
			res.Skipped++
		case StatusCredentialFailed:
			res.Failed++
		}
	}
}
