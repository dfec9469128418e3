package student

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	students map[string]*Student // admission no -> student
}

func (r *fakeRepository) InsertBatch(_ context.Context, students []*Student) error {
	for _, s := range students {
		r.students[s.AdmissionNo] = s
	}
	return nil
}

func (r *fakeRepository) GetAll(_ context.Context, _ string) ([]Student, error) {
	out := make([]Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeRepository) GetByAdmissionNo(_ context.Context, _, admissionNo string) (*Student, error) {
	s, ok := r.students[admissionNo]
	if !ok {
		return nil, ErrStudentNotFound
	}
	return s, nil
}

func (r *fakeRepository) MaxSequence(_ context.Context, _, _ string) (int, error) {
	return 0, nil
}

func (r *fakeRepository) Existing(_ context.Context, _ string) ([]Student, error) {
	return r.GetAll(nil, "")
}

func TestService_GetAll(t *testing.T) {
	repo := &fakeRepository{students: map[string]*Student{
		"ADM0001": {SchoolCode: "GHS", AdmissionNo: "ADM0001", Name: "Asha Rao"},
	}}
	svc := NewService(repo)

	students, err := svc.GetAll(context.Background(), "GHS")
	require.NoError(t, err)
	assert.Len(t, students, 1)

	_, err = svc.GetAll(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetByAdmissionNo(t *testing.T) {
	repo := &fakeRepository{students: map[string]*Student{
		"ADM0001": {SchoolCode: "GHS", AdmissionNo: "ADM0001", Name: "Asha Rao"},
	}}
	svc := NewService(repo)

	s, err := svc.GetByAdmissionNo(context.Background(), "GHS", "ADM0001")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", s.Name)

	_, err = svc.GetByAdmissionNo(context.Background(), "GHS", "ADM0042")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = svc.GetByAdmissionNo(context.Background(), "GHS", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
