package provision

import (
	"context"
	"errors"

	"school-service/internal/credential"
	"school-service/internal/staff"
	"school-service/internal/student"
	"school-service/internal/tenant"
)

// Store is the narrow slice of the data store the controller consumes. A
// uniqueness violation must be distinguishable from other errors on every
// write (see IsUniqueViolation).
type Store interface {
	// FetchContext loads the tenant's known identifiers, contacts and
	// reference lists in one pass.
	FetchContext(ctx context.Context, t *tenant.Tenant, kind Kind) (*Context, error)
	// MaxSequence returns the highest allocated sequence number for the
	// kind's ID prefix. Called immediately before the batch write to keep
	// the read-allocate-write window small.
	MaxSequence(ctx context.Context, t *tenant.Tenant, kind Kind, prefix string) (int, error)
	InsertIdentities(ctx context.Context, t *tenant.Tenant, kind Kind, recs []*CandidateRecord) error
	InsertCredential(ctx context.Context, t *tenant.Tenant, kind Kind, userID, passwordHash, plainPassword string) error
	// ReplaceCredential swaps an identity's credential atomically; only the
	// explicit regenerate operation calls this.
	ReplaceCredential(ctx context.Context, t *tenant.Tenant, kind Kind, userID, passwordHash, plainPassword string) error
	IdentityIDs(ctx context.Context, t *tenant.Tenant, kind Kind) ([]string, error)
	CredentialIDs(ctx context.Context, t *tenant.Tenant, kind Kind) ([]string, error)
	HasIdentity(ctx context.Context, t *tenant.Tenant, kind Kind, naturalID string) (bool, error)
}

type store struct {
	students    student.Repository
	staff       staff.Repository
	credentials credential.Repository
}

func NewStore(students student.Repository, staffRepo staff.Repository, credentials credential.Repository) Store {
	return &store{
		students:    students,
		staff:       staffRepo,
		credentials: credentials,
	}
}

func (s *store) FetchContext(ctx context.Context, t *tenant.Tenant, kind Kind) (*Context, error) {
	vctx := &Context{
		ExistingIDs:  map[string]bool{},
		Emails:       map[string]bool{},
		Phones:       map[string]bool{},
		Aadhaars:     map[string]bool{},
		Designations: map[string]bool{},
		Classes:      map[string]bool{},
	}

	switch kind {
	case KindStudent:
		rows, err := s.students.Existing(ctx, t.Code)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			addNonEmpty(vctx.ExistingIDs, r.AdmissionNo)
			addNonEmpty(vctx.Emails, r.Email)
			addNonEmpty(vctx.Phones, r.Phone)
			addNonEmpty(vctx.Aadhaars, r.Aadhaar)
			addNonEmpty(vctx.Classes, r.Class)
		}
	case KindStaff:
		rows, err := s.staff.Existing(ctx, t.Code)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			addNonEmpty(vctx.ExistingIDs, r.StaffID)
			addNonEmpty(vctx.Emails, r.Email)
			addNonEmpty(vctx.Phones, r.Phone)
			addNonEmpty(vctx.Aadhaars, r.Aadhaar)
			addNonEmpty(vctx.Designations, r.Designation)
		}
	}

	return vctx, nil
}

func (s *store) MaxSequence(ctx context.Context, t *tenant.Tenant, kind Kind, prefix string) (int, error) {
	if kind == KindStaff {
		return s.staff.MaxSequence(ctx, t.Code, prefix)
	}
	return s.students.MaxSequence(ctx, t.Code, prefix)
}

func (s *store) InsertIdentities(ctx context.Context, t *tenant.Tenant, kind Kind, recs []*CandidateRecord) error {
	if kind == KindStaff {
		members := make([]*staff.Staff, 0, len(recs))
		for _, rec := range recs {
			members = append(members, &staff.Staff{
				SchoolCode:    t.Code,
				StaffID:       rec.NaturalID,
				Name:          rec.Name,
				Department:    rec.Department,
				Designation:   rec.Designation,
				Gender:        rec.Gender,
				BloodGroup:    rec.BloodGroup,
				Phone:         rec.Phone,
				AltPhone:      rec.AltPhone,
				Email:         rec.Email,
				Aadhaar:       rec.Aadhaar,
				Qualification: rec.Qualification,
				JoiningDate:   rec.JoiningDate,
			})
		}
		return s.staff.InsertBatch(ctx, members)
	}

	students := make([]*student.Student, 0, len(recs))
	for _, rec := range recs {
		students = append(students, &student.Student{
			SchoolCode:    t.Code,
			AdmissionNo:   rec.NaturalID,
			Name:          rec.Name,
			Class:         rec.Class,
			Section:       rec.Section,
			Gender:        rec.Gender,
			BloodGroup:    rec.BloodGroup,
			Phone:         rec.Phone,
			AltPhone:      rec.AltPhone,
			Email:         rec.Email,
			Aadhaar:       rec.Aadhaar,
			GuardianName:  rec.GuardianName,
			BirthDate:     rec.BirthDate,
			AdmissionDate: rec.AdmissionDate,
		})
	}
	return s.students.InsertBatch(ctx, students)
}

func (s *store) InsertCredential(ctx context.Context, t *tenant.Tenant, kind Kind, userID, passwordHash, plainPassword string) error {
	return s.credentials.Insert(ctx, &credential.Credential{
		SchoolCode:    t.Code,
		UserID:        userID,
		Kind:          string(kind),
		PasswordHash:  passwordHash,
		PlainPassword: plainPassword,
		IsActive:      true,
	})
}

func (s *store) ReplaceCredential(ctx context.Context, t *tenant.Tenant, kind Kind, userID, passwordHash, plainPassword string) error {
	return s.credentials.Replace(ctx, &credential.Credential{
		SchoolCode:    t.Code,
		UserID:        userID,
		Kind:          string(kind),
		PasswordHash:  passwordHash,
		PlainPassword: plainPassword,
		IsActive:      true,
	})
}

func (s *store) IdentityIDs(ctx context.Context, t *tenant.Tenant, kind Kind) ([]string, error) {
	if kind == KindStaff {
		rows, err := s.staff.Existing(ctx, t.Code)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.StaffID)
		}
		return ids, nil
	}

	rows, err := s.students.Existing(ctx, t.Code)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.AdmissionNo)
	}
	return ids, nil
}

func (s *store) CredentialIDs(ctx context.Context, t *tenant.Tenant, kind Kind) ([]string, error) {
	return s.credentials.ListUserIDs(ctx, t.Code, string(kind))
}

func (s *store) HasIdentity(ctx context.Context, t *tenant.Tenant, kind Kind, naturalID string) (bool, error) {
	var err error
	if kind == KindStaff {
		_, err = s.staff.GetByStaffID(ctx, t.Code, naturalID)
		if errors.Is(err, staff.ErrStaffNotFound) {
			return false, nil
		}
	} else {
		_, err = s.students.GetByAdmissionNo(ctx, t.Code, naturalID)
		if errors.Is(err, student.ErrStudentNotFound) {
			return false, nil
		}
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func addNonEmpty(set map[string]bool, value string) {
	if value != "" {
		set[value] = true
	}
}
