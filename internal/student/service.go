package student

import (
	"context"
	"errors"
)

var ErrInvalidInput = errors.New("invalid input")

type Service interface {
	GetAll(ctx context.Context, schoolCode string) ([]Student, error)
	GetByAdmissionNo(ctx context.Context, schoolCode, admissionNo string) (*Student, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetAll(ctx context.Context, schoolCode string) ([]Student, error) {
	if schoolCode == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetAll(ctx, schoolCode)
}

func (s *service) GetByAdmissionNo(ctx context.Context, schoolCode, admissionNo string) (*Student, error) {
	if schoolCode == "" || admissionNo == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByAdmissionNo(ctx, schoolCode, admissionNo)
}
