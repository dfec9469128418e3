package provision

import (
	"strconv"
	"strings"
)

// Column aliases, keyed by canonical field name. Header matching is fuzzy:
// headers are lowercased and stripped of separators before lookup, so
// "Primary Contact", "primary_contact" and "PrimaryContact" all land on the
// same field.
var commonAliases = map[string][]string{
	"name":       {"name", "full name", "student name", "staff name", "employee name"},
	"gender":     {"gender", "sex"},
	"bloodgroup": {"blood group", "bloodgroup"},
	"phone":      {"phone", "mobile", "contact", "contact1", "primary contact", "contact no", "mobile no", "phone number"},
	"altphone":   {"alt phone", "contact2", "secondary contact", "alternate contact", "alternate no"},
	"email":      {"email", "email id", "e mail", "mail"},
	"aadhaar":    {"aadhaar", "aadhar", "aadhaar no", "aadhar no", "aadhaar number"},
}

var studentAliases = map[string][]string{
	"naturalid":     {"admission no", "admission number", "adm no"},
	"class":         {"class", "standard", "grade"},
	"section":       {"section"},
	"guardianname":  {"guardian", "guardian name", "father name", "parent name"},
	"birthdate":     {"dob", "date of birth", "birth date", "birthdate"},
	"admissiondate": {"admission date", "doa", "date of admission"},
}

var staffAliases = map[string][]string{
	"naturalid":     {"staff id", "staff no", "employee id", "emp id"},
	"department":    {"department", "dept"},
	"designation":   {"designation", "role", "position"},
	"qualification": {"qualification", "qualifications"},
	"birthdate":     {"dob", "date of birth", "birth date", "birthdate"},
	"joiningdate":   {"joining date", "doj", "date of joining"},
}

// digit-bearing fields get non-digit characters stripped during
// normalization; phone fields additionally drop a leading 91 country code so
// "98765-43210" and "+91 9876543210" compare equal
var (
	digitFields = map[string]bool{
		"phone":    true,
		"altphone": true,
		"aadhaar":  true,
	}
	phoneFields = map[string]bool{
		"phone":    true,
		"altphone": true,
	}
)

type columnMap map[string]string // fuzzy header -> canonical field

func buildColumnMap(kind Kind) columnMap {
	cm := columnMap{}
	add := func(aliases map[string][]string) {
		for field, headers := range aliases {
			for _, h := range headers {
				cm[fuzzyHeader(h)] = field
			}
		}
	}
	add(commonAliases)
	switch kind {
	case KindStudent:
		add(studentAliases)
	case KindStaff:
		add(staffAliases)
	}
	return cm
}

func fuzzyHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize turns one raw spreadsheet row into a typed CandidateRecord for
// the given kind. It never fails: absent or malformed values pass through as
// empty strings for the validator to flag.
func Normalize(row ImportRow, kind Kind, rowNum int) *CandidateRecord {
	cm := buildColumnMap(kind)

	rec := &CandidateRecord{
		RowNum: rowNum,
		Extra:  map[string]string{},
	}

	for header, cell := range row {
		value := strings.TrimSpace(cellString(cell))

		field, known := cm[fuzzyHeader(header)]
		if !known {
			rec.Extra[header] = value
			continue
		}
		if digitFields[field] {
			value = digitsOnly(value)
		}
		if phoneFields[field] {
			value = trimCountryCode(value)
		}
		rec.set(field, value)
	}

	return rec
}

func (r *CandidateRecord) set(field, value string) {
	switch field {
	case "naturalid":
		r.NaturalID = value
	case "name":
		r.Name = value
	case "gender":
		r.Gender = strings.ToLower(value)
	case "bloodgroup":
		r.BloodGroup = strings.ToUpper(value)
	case "phone":
		r.Phone = value
	case "altphone":
		r.AltPhone = value
	case "email":
		r.Email = strings.ToLower(value)
	case "aadhaar":
		r.Aadhaar = value
	case "class":
		r.Class = value
	case "section":
		r.Section = strings.ToUpper(value)
	case "guardianname":
		r.GuardianName = value
	case "birthdate":
		r.BirthDate = value
	case "admissiondate":
		r.AdmissionDate = value
	case "department":
		r.Department = value
	case "designation":
		r.Designation = value
	case "qualification":
		r.Qualification = value
	case "joiningdate":
		r.JoiningDate = value
	}
}

// cellString renders a raw cell to its string form. JSON numbers arrive as
// float64; integral values must not pick up a trailing ".0".
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// trimCountryCode drops a leading 91 from a twelve-digit phone number. Only
// applied to phone fields; a ten-digit number starting with 91 stays intact.
func trimCountryCode(s string) string {
	if len(s) == phoneDigits+2 && strings.HasPrefix(s, "91") {
		return s[2:]
	}
	return s
}
