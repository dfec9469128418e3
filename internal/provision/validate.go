package provision

import (
	"fmt"
	"regexp"
	"time"
)

// Context carries everything the validator needs to know about the tenant,
// prefetched once per batch rather than queried per row.
type Context struct {
	ExistingIDs map[string]bool
	Emails      map[string]bool
	Phones      map[string]bool
	Aadhaars    map[string]bool

	// Reference lists. An empty set disables the corresponding check (a
	// fresh tenant has nothing to compare against yet).
	Designations map[string]bool
	Classes      map[string]bool
}

// FieldIssue is one validation finding, tied to the canonical field name.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Outcome is the result of validating one candidate. Errors block the row
// from ever reaching the store; warnings flag it for human review but let
// the import proceed. Both lists are ordered by check execution, so
// re-validating identical input yields an identical, diffable outcome.
type Outcome struct {
	Errors   []FieldIssue
	Warnings []FieldIssue
}

func (o *Outcome) Valid() bool {
	return len(o.Errors) == 0
}

func (o *Outcome) addError(field, format string, args ...interface{}) {
	o.Errors = append(o.Errors, FieldIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (o *Outcome) addWarning(field, format string, args ...interface{}) {
	o.Warnings = append(o.Warnings, FieldIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	genders     = map[string]bool{"male": true, "female": true, "other": true}
	bloodGroups = map[string]bool{
		"A+": true, "A-": true, "B+": true, "B-": true,
		"AB+": true, "AB-": true, "O+": true, "O-": true,
	}
)

const (
	phoneDigits   = 10
	aadhaarDigits = 12
)

// Validate runs every check for the candidate's kind in a fixed order:
// presence, format, enumerations, then cross-references against the tenant
// context.
func Validate(rec *CandidateRecord, kind Kind, vctx *Context) *Outcome {
	out := &Outcome{}

	// presence
	if rec.Name == "" {
		out.addError("name", "name is required")
	}
	switch kind {
	case KindStudent:
		if rec.Class == "" {
			out.addError("class", "class is required")
		}
		if rec.Section == "" {
			out.addError("section", "section is required")
		}
		if rec.BirthDate == "" {
			out.addError("birth_date", "date of birth is required")
		}
	case KindStaff:
		if rec.Department == "" {
			out.addError("department", "department is required")
		}
		if rec.Designation == "" {
			out.addError("designation", "designation is required")
		}
		if rec.JoiningDate == "" {
			out.addError("joining_date", "joining date is required")
		}
	}
	if rec.Phone == "" {
		out.addError("phone", "contact number is required")
	}

	// format
	if rec.Phone != "" && len(rec.Phone) != phoneDigits {
		out.addError("phone", "contact number must be %d digits", phoneDigits)
	}
	if rec.AltPhone != "" && len(rec.AltPhone) != phoneDigits {
		out.addError("alt_phone", "contact number must be %d digits", phoneDigits)
	}
	if rec.Aadhaar != "" && len(rec.Aadhaar) != aadhaarDigits {
		out.addError("aadhaar", "aadhaar must be %d digits", aadhaarDigits)
	}
	checkDate(out, "birth_date", rec.BirthDate)
	checkDate(out, "admission_date", rec.AdmissionDate)
	checkDate(out, "joining_date", rec.JoiningDate)
	if rec.Email != "" && !emailPattern.MatchString(rec.Email) {
		out.addError("email", "invalid email address")
	}

	// enumerations
	if rec.Gender != "" && !genders[rec.Gender] {
		out.addError("gender", "gender must be one of male, female, other")
	}
	if rec.BloodGroup != "" && !bloodGroups[rec.BloodGroup] {
		out.addError("blood_group", "unknown blood group %q", rec.BloodGroup)
	}

	// cross-references against the tenant
	if rec.NaturalID != "" && vctx.ExistingIDs[rec.NaturalID] {
		out.addError("natural_id", "identifier %s already exists for this school", rec.NaturalID)
	}
	if rec.Email != "" && vctx.Emails[rec.Email] {
		out.addWarning("email", "email already present for this school")
	}
	if rec.Phone != "" && vctx.Phones[rec.Phone] {
		out.addWarning("phone", "contact number already present for this school")
	}
	if rec.Aadhaar != "" && vctx.Aadhaars[rec.Aadhaar] {
		out.addWarning("aadhaar", "aadhaar already present for this school")
	}
	if kind == KindStaff && rec.Designation != "" && len(vctx.Designations) > 0 && !vctx.Designations[rec.Designation] {
		out.addWarning("designation", "designation %q not in the known list", rec.Designation)
	}
	if kind == KindStudent && rec.Class != "" && len(vctx.Classes) > 0 && !vctx.Classes[rec.Class] {
		out.addWarning("class", "class %q not in the known list", rec.Class)
	}

	return out
}

func checkDate(out *Outcome, field, value string) {
	if value == "" {
		return
	}
	if !datePattern.MatchString(value) {
		out.addError(field, "date must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		out.addError(field, "invalid calendar date")
	}
}
