package credential

import (
	"time"

	"github.com/uptrace/bun"
)

// Credential is the login secret for one identity. The unique constraint on
// (school_code, user_id) is the idempotency fence for the provisioning
// pipeline: at most one credential may ever exist per identity, and a
// violation on insert means another run already provisioned it.
//
// The plaintext one-time password is persisted next to its hash so that
// administrators can re-display it. Deliberate, inherited product decision;
// see DESIGN.md before widening access to this table.
type Credential struct {
	bun.BaseModel `bun:"table:credentials,alias:c"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	SchoolCode    string    `bun:"school_code,notnull,unique:credentials_school_user" json:"school_code"`
	UserID        string    `bun:"user_id,notnull,unique:credentials_school_user" json:"user_id"`
	Kind          string    `bun:"kind,notnull" json:"kind"`
	PasswordHash  string    `bun:"password_hash,notnull" json:"-"`
	PlainPassword string    `bun:"plain_password,notnull" json:"-"`
	IsActive      bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
