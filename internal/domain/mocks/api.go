package mocks

import (
	"context"

	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// API is a mock for project.API and dashboard.API.
type API struct {
	mock.Mock
}

func (m *API) ListProjects(ctx context.Context, token string) ([]project.Project, error) {
	args := m.Called(ctx, token)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) GetProject(ctx context.Context, token, id string) (*project.Project, error) {
	args := m.Called(ctx, token, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) CreateProject(ctx context.Context, token string, req project.CreateRequest) (*project.Project, error) {
	args := m.Called(ctx, token, req)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) UpdateProject(ctx context.Context, token, id string, patch project.UpdateRequest) (*project.Project, error) {
	args := m.Called(ctx, token, id, patch)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) DeleteProject(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *API) ProcessVideo(ctx context.Context, token string, req project.ProcessVideoRequest) (*project.ProcessVideoResult, error) {
	args := m.Called(ctx, token, req)
	if res, ok := args.Get(0).(*project.ProcessVideoResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *API) GetDashboardStats(ctx context.Context, token string) (*dashboard.Stats, error) {
	args := m.Called(ctx, token)
	if stats, ok := args.Get(0).(*dashboard.Stats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
