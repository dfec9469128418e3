package provision

import (
	"errors"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

var (
	// ErrEmptyInput is returned when an import carries no rows at all; the
	// only whole-request failure besides an unknown tenant.
	ErrEmptyInput = errors.New("no rows to import")

	// ErrIdentityNotFound is returned by regenerate when the natural ID has
	// no identity behind it.
	ErrIdentityNotFound = errors.New("identity not found")
)

// unique_violation, Postgres error class 23
const pgUniqueViolation = "23505"

// IsUniqueViolation classifies a storage error as a uniqueness-constraint
// violation. This is the duplicate-safe upsert policy's decision point:
// whenever a credential or identity write can race an identical concurrent
// write, a unique violation means "someone else already did this" and is
// treated as success, while every other failure propagates unchanged.
//
// The SQLSTATE code from the driver is authoritative; the message match is a
// fallback for stores that surface the violation without structured fields.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
