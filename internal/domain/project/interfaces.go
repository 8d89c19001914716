package project

import "context"

// API is the remote backend for project operations. Every call carries the
// caller's bearer token.
type API interface {
	ListProjects(ctx context.Context, token string) ([]Project, error)
	GetProject(ctx context.Context, token, id string) (*Project, error)
	CreateProject(ctx context.Context, token string, req CreateRequest) (*Project, error)
	UpdateProject(ctx context.Context, token, id string, patch UpdateRequest) (*Project, error)
	DeleteProject(ctx context.Context, token, id string) error
	ProcessVideo(ctx context.Context, token string, req ProcessVideoRequest) (*ProcessVideoResult, error)
}
