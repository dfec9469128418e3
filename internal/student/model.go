package student

import (
	"time"

	"github.com/uptrace/bun"
)

// Student is the persisted student identity. (school_code, admission_no) is
// unique; the admission number is the natural identifier used for login and
// credential provisioning.
type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	SchoolCode    string    `bun:"school_code,notnull,unique:students_school_admission" json:"school_code"`
	AdmissionNo   string    `bun:"admission_no,notnull,unique:students_school_admission" json:"admission_no"`
	Name          string    `bun:"name,notnull" json:"name"`
	Class         string    `bun:"class,notnull" json:"class"`
	Section       string    `bun:"section,notnull" json:"section"`
	Gender        string    `bun:"gender" json:"gender,omitempty"`
	BloodGroup    string    `bun:"blood_group" json:"blood_group,omitempty"`
	Phone         string    `bun:"phone,notnull" json:"phone"`
	AltPhone      string    `bun:"alt_phone" json:"alt_phone,omitempty"`
	Email         string    `bun:"email" json:"email,omitempty"`
	Aadhaar       string    `bun:"aadhaar" json:"aadhaar,omitempty"`
	GuardianName  string    `bun:"guardian_name" json:"guardian_name,omitempty"`
	BirthDate     string    `bun:"birth_date,notnull" json:"birth_date"`
	AdmissionDate string    `bun:"admission_date" json:"admission_date,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
