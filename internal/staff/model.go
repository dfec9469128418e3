package staff

import (
	"time"

	"github.com/uptrace/bun"
)

// Staff is the persisted staff identity. (school_code, staff_id) is unique;
// the staff ID is the natural identifier used for login and credential
// provisioning.
type Staff struct {
	bun.BaseModel `bun:"table:staff,alias:st"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	SchoolCode    string    `bun:"school_code,notnull,unique:staff_school_staff_id" json:"school_code"`
	StaffID       string    `bun:"staff_id,notnull,unique:staff_school_staff_id" json:"staff_id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Department    string    `bun:"department,notnull" json:"department"`
	Designation   string    `bun:"designation,notnull" json:"designation"`
	Gender        string    `bun:"gender" json:"gender,omitempty"`
	BloodGroup    string    `bun:"blood_group" json:"blood_group,omitempty"`
	Phone         string    `bun:"phone,notnull" json:"phone"`
	AltPhone      string    `bun:"alt_phone" json:"alt_phone,omitempty"`
	Email         string    `bun:"email" json:"email,omitempty"`
	Aadhaar       string    `bun:"aadhaar" json:"aadhaar,omitempty"`
	Qualification string    `bun:"qualification" json:"qualification,omitempty"`
	JoiningDate   string    `bun:"joining_date,notnull" json:"joining_date"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
