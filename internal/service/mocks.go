package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/crewmate-creator/internal/repository"
)

type MockCrewmateRepository struct {
	mock.Mock
}

// Create copies the ID and CreatedAt of the returned row (if any) into c,
// mimicking a store that assigns them on insert.
func (m *MockCrewmateRepository) Create(ctx context.Context, c *repository.Crewmate) error {
	args := m.Called(ctx, c)
	if assigned, ok := args.Get(0).(*repository.Crewmate); ok && assigned != nil {
		c.ID = assigned.ID
		c.CreatedAt = assigned.CreatedAt
	}
	return args.Error(1)
}

func (m *MockCrewmateRepository) List(ctx context.Context) ([]*repository.Crewmate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.Crewmate), args.Error(1)
}

func (m *MockCrewmateRepository) Get(ctx context.Context, id uuid.UUID) (*repository.Crewmate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Crewmate), args.Error(1)
}

func (m *MockCrewmateRepository) Update(ctx context.Context, c *repository.Crewmate) (*repository.Crewmate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Crewmate), args.Error(1)
}

func (m *MockCrewmateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
