package staff

import (
	"context"
	"errors"
)

var ErrInvalidInput = errors.New("invalid input")

type Service interface {
	GetAll(ctx context.Context, schoolCode string) ([]Staff, error)
	GetByStaffID(ctx context.Context, schoolCode, staffID string) (*Staff, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetAll(ctx context.Context, schoolCode string) ([]Staff, error) {
	if schoolCode == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetAll(ctx, schoolCode)
}

func (s *service) GetByStaffID(ctx context.Context, schoolCode, staffID string) (*Staff, error) {
	if schoolCode == "" || staffID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByStaffID(ctx, schoolCode, staffID)
}
