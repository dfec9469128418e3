package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyContext() *Context {
	return &Context{
		ExistingIDs:  map[string]bool{},
		Emails:       map[string]bool{},
		Phones:       map[string]bool{},
		Aadhaars:     map[string]bool{},
		Designations: map[string]bool{},
		Classes:      map[string]bool{},
	}
}

func validStudent() *CandidateRecord {
	return &CandidateRecord{
		RowNum:    1,
		Name:      "Asha Rao",
		Class:     "5",
		Section:   "A",
		BirthDate: "2014-03-12",
		Phone:     "9876543210",
	}
}

func validStaff() *CandidateRecord {
	return &CandidateRecord{
		RowNum:      1,
		Name:        "Meena Iyer",
		Department:  "Science",
		Designation: "Teacher",
		JoiningDate: "2024-06-01",
		Phone:       "9876543210",
	}
}

func TestValidate_ValidRecords(t *testing.T) {
	assert.True(t, Validate(validStudent(), KindStudent, emptyContext()).Valid())
	assert.True(t, Validate(validStaff(), KindStaff, emptyContext()).Valid())
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		rec   *CandidateRecord
		field string
	}{
		{"missing name", KindStudent, func() *CandidateRecord { r := validStudent(); r.Name = ""; return r }(), "name"},
		{"missing class", KindStudent, func() *CandidateRecord { r := validStudent(); r.Class = ""; return r }(), "class"},
		{"missing section", KindStudent, func() *CandidateRecord { r := validStudent(); r.Section = ""; return r }(), "section"},
		{"missing dob", KindStudent, func() *CandidateRecord { r := validStudent(); r.BirthDate = ""; return r }(), "birth_date"},
		{"missing phone", KindStudent, func() *CandidateRecord { r := validStudent(); r.Phone = ""; return r }(), "phone"},
		{"missing department", KindStaff, func() *CandidateRecord { r := validStaff(); r.Department = ""; return r }(), "department"},
		{"missing designation", KindStaff, func() *CandidateRecord { r := validStaff(); r.Designation = ""; return r }(), "designation"},
		{"missing joining date", KindStaff, func() *CandidateRecord { r := validStaff(); r.JoiningDate = ""; return r }(), "joining_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Validate(tt.rec, tt.kind, emptyContext())
			require.False(t, out.Valid())
			assert.Equal(t, tt.field, out.Errors[0].Field)
		})
	}
}

func TestValidate_Formats(t *testing.T) {
	t.Run("short phone", func(t *testing.T) {
		rec := validStudent()
		rec.Phone = "987654321"
		out := Validate(rec, KindStudent, emptyContext())
		require.False(t, out.Valid())
		assert.Contains(t, out.Errors[0].Message, "must be 10 digits")
	})

	t.Run("bad aadhaar", func(t *testing.T) {
		rec := validStudent()
		rec.Aadhaar = "12345"
		out := Validate(rec, KindStudent, emptyContext())
		require.False(t, out.Valid())
		assert.Equal(t, "aadhaar", out.Errors[0].Field)
	})

	t.Run("bad date format", func(t *testing.T) {
		rec := validStudent()
		rec.BirthDate = "12/03/2014"
		out := Validate(rec, KindStudent, emptyContext())
		require.False(t, out.Valid())
		assert.Contains(t, out.Errors[0].Message, "YYYY-MM-DD")
	})

	t.Run("impossible calendar date", func(t *testing.T) {
		rec := validStudent()
		rec.BirthDate = "2014-02-30"
		out := Validate(rec, KindStudent, emptyContext())
		require.False(t, out.Valid())
		assert.Contains(t, out.Errors[0].Message, "invalid calendar date")
	})

	t.Run("bad email", func(t *testing.T) {
		rec := validStudent()
		rec.Email = "not-an-email"
		out := Validate(rec, KindStudent, emptyContext())
		require.False(t, out.Valid())
		assert.Equal(t, "email", out.Errors[0].Field)
	})
}

func TestValidate_Enumerations(t *testing.T) {
	rec := validStudent()
	rec.Gender = "unknown"
	rec.BloodGroup = "C+"

	out := Validate(rec, KindStudent, emptyContext())
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "gender", out.Errors[0].Field)
	assert.Equal(t, "blood_group", out.Errors[1].Field)
}

func TestValidate_ExistingIdentifierIsError(t *testing.T) {
	vctx := emptyContext()
	vctx.ExistingIDs["ADM0042"] = true

	rec := validStudent()
	rec.NaturalID = "ADM0042"

	out := Validate(rec, KindStudent, vctx)
	require.False(t, out.Valid())
	assert.Equal(t, "natural_id", out.Errors[0].Field)
}

func TestValidate_DuplicateContactsAreWarnings(t *testing.T) {
	vctx := emptyContext()
	vctx.Emails["asha@example.com"] = true
	vctx.Phones["9876543210"] = true
	vctx.Aadhaars["123456789012"] = true

	rec := validStudent()
	rec.Email = "asha@example.com"
	rec.Aadhaar = "123456789012"

	out := Validate(rec, KindStudent, vctx)
	assert.True(t, out.Valid())
	assert.Len(t, out.Warnings, 3)
}

func TestValidate_ReferenceListChecks(t *testing.T) {
	t.Run("unknown class warns", func(t *testing.T) {
		vctx := emptyContext()
		vctx.Classes["5"] = true

		rec := validStudent()
		rec.Class = "13"
		out := Validate(rec, KindStudent, vctx)
		assert.True(t, out.Valid())
		require.Len(t, out.Warnings, 1)
		assert.Equal(t, "class", out.Warnings[0].Field)
	})

	t.Run("empty list disables the check", func(t *testing.T) {
		rec := validStudent()
		rec.Class = "13"
		out := Validate(rec, KindStudent, emptyContext())
		assert.Empty(t, out.Warnings)
	})

	t.Run("unknown designation warns", func(t *testing.T) {
		vctx := emptyContext()
		vctx.Designations["Teacher"] = true

		rec := validStaff()
		rec.Designation = "Astronaut"
		out := Validate(rec, KindStaff, vctx)
		assert.True(t, out.Valid())
		require.Len(t, out.Warnings, 1)
		assert.Equal(t, "designation", out.Warnings[0].Field)
	})
}

func TestValidate_Deterministic(t *testing.T) {
	rec := validStudent()
	rec.Phone = "12345"
	rec.Gender = "x"
	rec.BirthDate = "bad"
	rec.Email = "nope"

	first := Validate(rec, KindStudent, emptyContext())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Validate(rec, KindStudent, emptyContext()))
	}
}
