package provision

import "fmt"

// Kind selects which identity family an operation works on.
type Kind string

const (
	KindStudent Kind = "student"
	KindStaff   Kind = "staff"
)

// ParseKind maps the URL path segment onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "students", "student":
		return KindStudent, nil
	case "staff":
		return KindStaff, nil
	default:
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
}

// ImportRow is one spreadsheet line as received from the upload layer:
// column label to raw cell value. Cells arrive as strings, JSON numbers or
// blanks depending on how the sheet was filled in.
type ImportRow map[string]interface{}

// CandidateRecord is the normalized, typed view of an ImportRow. All fields
// are canonical strings: digits-only phone/Aadhaar, YYYY-MM-DD dates. Fields
// not applicable to the record's kind stay empty.
type CandidateRecord struct {
	RowNum    int    // 1-based position in the uploaded sheet
	NaturalID string // admission_no / staff_id when the sheet supplied one

	Name       string
	Gender     string
	BloodGroup string
	Phone      string
	AltPhone   string
	Email      string
	Aadhaar    string

	// student fields
	Class         string
	Section       string
	GuardianName  string
	BirthDate     string
	AdmissionDate string

	// staff fields
	Department    string
	Designation   string
	Qualification string
	JoiningDate   string

	// Unrecognized columns pass through untouched so future fields do not
	// have to round-trip through a schema change here.
	Extra map[string]string
}
