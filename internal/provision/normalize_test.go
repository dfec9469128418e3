package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FuzzyHeaders(t *testing.T) {
	row := ImportRow{
		"Student Name":    "Asha Rao",
		"ADMISSION_NO":    "ADM0042",
		"Primary Contact": "9876543210",
		"e-mail":          "Asha.Rao@Example.com",
	}

	rec := Normalize(row, KindStudent, 1)

	assert.Equal(t, "Asha Rao", rec.Name)
	assert.Equal(t, "ADM0042", rec.NaturalID)
	assert.Equal(t, "9876543210", rec.Phone)
	assert.Equal(t, "asha.rao@example.com", rec.Email)
}

func TestNormalize_StripsNonDigits(t *testing.T) {
	row := ImportRow{
		"Name":    "Asha Rao",
		"Mobile":  "+91 98765-43210",
		"Aadhaar": "1234 5678 9012",
	}

	rec := Normalize(row, KindStudent, 1)

	assert.Equal(t, "9876543210", rec.Phone)
	assert.Equal(t, "123456789012", rec.Aadhaar)
}

func TestNormalize_CountryCodePrefix(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"plus and spaces", "+91 98765 43210", "9876543210"},
		{"bare country code", "919876543210", "9876543210"},
		{"no country code", "9876543210", "9876543210"},
		{"ten digits starting with 91", "9198765432", "9198765432"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(ImportRow{"Name": "Asha Rao", "Mobile": tt.cell}, KindStudent, 1)
			assert.Equal(t, tt.want, rec.Phone)
		})
	}

	// aadhaar is twelve digits and never trimmed
	rec := Normalize(ImportRow{"Name": "Asha Rao", "Aadhaar": "9112 3456 7890"}, KindStudent, 1)
	assert.Equal(t, "911234567890", rec.Aadhaar)
}

func TestNormalize_NumericCells(t *testing.T) {
	// JSON numbers arrive as float64; integral values must not grow ".0"
	row := ImportRow{
		"Name":   "Asha Rao",
		"Class":  float64(5),
		"Mobile": float64(9876543210),
	}

	rec := Normalize(row, KindStudent, 1)

	assert.Equal(t, "5", rec.Class)
	assert.Equal(t, "9876543210", rec.Phone)
}

func TestNormalize_CanonicalCasing(t *testing.T) {
	row := ImportRow{
		"Name":        "Asha Rao",
		"Gender":      "Female",
		"Blood Group": "o+",
		"Section":     "b",
	}

	rec := Normalize(row, KindStudent, 1)

	assert.Equal(t, "female", rec.Gender)
	assert.Equal(t, "O+", rec.BloodGroup)
	assert.Equal(t, "B", rec.Section)
}

func TestNormalize_UnknownColumnsPassThrough(t *testing.T) {
	row := ImportRow{
		"Name":         "Asha Rao",
		"House Colour": "Blue",
	}

	rec := Normalize(row, KindStudent, 1)

	assert.Equal(t, "Blue", rec.Extra["House Colour"])
}

func TestNormalize_KindScopedAliases(t *testing.T) {
	row := ImportRow{
		"Name":        "Meena Iyer",
		"Employee ID": "STF042",
		"Designation": "Teacher",
	}

	asStaff := Normalize(row, KindStaff, 1)
	assert.Equal(t, "STF042", asStaff.NaturalID)
	assert.Equal(t, "Teacher", asStaff.Designation)

	// the same headers mean nothing for a student sheet
	asStudent := Normalize(row, KindStudent, 1)
	assert.Empty(t, asStudent.NaturalID)
	assert.Equal(t, "STF042", asStudent.Extra["Employee ID"])
}

func TestNormalize_NeverFails(t *testing.T) {
	row := ImportRow{
		"Name":   nil,
		"Mobile": true,
		"DOB":    []interface{}{"2014-03-12"},
	}

	rec := Normalize(row, KindStudent, 3)

	assert.Equal(t, 3, rec.RowNum)
	assert.Empty(t, rec.Name)
	assert.Empty(t, rec.BirthDate)
}
