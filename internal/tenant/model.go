package tenant

import (
	"time"

	"github.com/uptrace/bun"
)

// Tenant is one school. Every identifier in the system is scoped to a tenant,
// and the tenant value is threaded explicitly through every call that touches
// tenant-scoped data.
type Tenant struct {
	bun.BaseModel `bun:"table:schools,alias:sc"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Code      string    `bun:"code,unique,notnull" json:"code"`
	Name      string    `bun:"name,notnull" json:"name"`
	Active    bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
