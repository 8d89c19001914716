package mocks

import (
	"context"

	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, userID string, proj *project.Project) error {
	args := m.Called(ctx, userID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	args := m.Called(ctx, userID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, userID string) ([]project.Project, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, userID string, proj *project.Project) error {
	args := m.Called(ctx, userID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// ClipRepository is a mock for repository.ClipRepository.
type ClipRepository struct {
	mock.Mock
}

func (m *ClipRepository) Create(ctx context.Context, userID string, clip *project.Clip) error {
	args := m.Called(ctx, userID, clip)
	return args.Error(0)
}

func (m *ClipRepository) ListByProject(ctx context.Context, userID, projectID string) ([]project.Clip, error) {
	args := m.Called(ctx, userID, projectID)
	if list, ok := args.Get(0).([]project.Clip); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// StatsRepository is a mock for repository.StatsRepository.
type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) Stats(ctx context.Context, userID string) (*dashboard.Stats, error) {
	args := m.Called(ctx, userID)
	if stats, ok := args.Get(0).(*dashboard.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
