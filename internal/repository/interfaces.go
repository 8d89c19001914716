package repository

import (
	"context"

	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

// ProjectRepository manages project persistence. Every method is scoped to
// the owning user.
type ProjectRepository interface {
	Create(ctx context.Context, userID string, proj *project.Project) error
	Get(ctx context.Context, userID, id string) (*project.Project, error)
	List(ctx context.Context, userID string) ([]project.Project, error)
	Update(ctx context.Context, userID string, proj *project.Project) error
	Delete(ctx context.Context, userID, id string) error
}

// ClipRepository manages clip persistence
type ClipRepository interface {
	Create(ctx context.Context, userID string, clip *project.Clip) error
	ListByProject(ctx context.Context, userID, projectID string) ([]project.Clip, error)
}

// StatsRepository computes dashboard aggregates
type StatsRepository interface {
	Stats(ctx context.Context, userID string) (*dashboard.Stats, error)
}
