package provision

// RowStatus tracks one row through the pipeline. Rows only move forward:
// received -> normalized -> validated -> inserted -> credentialed.
type RowStatus string

const (
	// terminal states
	StatusRejected         RowStatus = "rejected"          // validation errors, never written
	StatusInsertFailed     RowStatus = "insert_failed"     // identity batch insert failed
	StatusCreated          RowStatus = "created"           // identity + credential written
	StatusAlreadyExisted   RowStatus = "already_existed"   // credential existed; benign
	StatusCredentialFailed RowStatus = "credential_failed" // identity written, credential insert failed
)

// RowError reports one blocking finding with the originating sheet row.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// RowWarning is informational; the row was imported anyway.
type RowWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// IssuedCredential pairs a freshly generated plaintext password with its
// natural ID. Only present on a result when the caller asked to reveal.
type IssuedCredential struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Result is the aggregate returned by every provisioning operation. Counts
// are derived from per-row terminal states, never adjusted after the fact.
type Result struct {
	Total     int `json:"total"`     // rows received (import) / identities examined (fill)
	Processed int `json:"processed"` // rows that reached the store stage
	Success   int `json:"success"`   // identities inserted (import only)
	Created   int `json:"created"`   // credentials created
	Skipped   int `json:"skipped"`   // credentials already provisioned elsewhere
	Failed    int `json:"failed"`    // rows rejected or failed at the store

	Errors      []RowError         `json:"errors,omitempty"`
	Warnings    []RowWarning       `json:"warnings,omitempty"`
	Credentials []IssuedCredential `json:"credentials,omitempty"`
}

// rowOutcome is the internal per-row ledger the counts are derived from.
type rowOutcome struct {
	row       int
	naturalID string
	status    RowStatus
}
