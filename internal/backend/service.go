// Package backend implements the server side of the clipdeck REST API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/repository"
)

// Service handles project, clip and stats operations for a user.
type Service struct {
	projects repository.ProjectRepository
	clips    repository.ClipRepository
	stats    repository.StatsRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new backend service.
func NewService(projects repository.ProjectRepository, clips repository.ClipRepository, stats repository.StatsRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		projects: projects,
		clips:    clips,
		stats:    stats,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateProject creates a new project.
func (s *Service) CreateProject(ctx context.Context, userID string, req project.CreateRequest) (*project.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	proj := &project.Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SourceURL:   strings.TrimSpace(req.SourceURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.Create(ctx, userID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "user_id", userID, "project_id", proj.ID)
	return proj, nil
}

// GetProject fetches a project with its clips.
func (s *Service) GetProject(ctx context.Context, userID, id string) (*project.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: project id is required", project.ErrInvalidInput)
	}

	proj, err := s.projects.Get(ctx, userID, id)
	if err != nil {
		return nil, mapRepoError("getting project", err)
	}

	clips, err := s.clips.ListByProject(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("listing clips: %w", err)
	}
	proj.Clips = clips
	proj.ClipCount = len(clips)

	return proj, nil
}

// ListProjects returns the user's projects, newest first.
func (s *Service) ListProjects(ctx context.Context, userID string) ([]project.Project, error) {
	projects, err := s.projects.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies a partial patch.
func (s *Service) UpdateProject(ctx context.Context, userID, id string, patch project.UpdateRequest) (*project.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	proj, err := s.projects.Get(ctx, userID, id)
	if err != nil {
		return nil, mapRepoError("getting project", err)
	}

	proj.Apply(patch)
	proj.Name = strings.TrimSpace(proj.Name)
	proj.UpdatedAt = s.now()

	if err := s.projects.Update(ctx, userID, proj); err != nil {
		return nil, mapRepoError("updating project", err)
	}

	return proj, nil
}

// DeleteProject removes a project and its clips.
func (s *Service) DeleteProject(ctx context.Context, userID, id string) error {
	if err := s.projects.Delete(ctx, userID, id); err != nil {
		return mapRepoError("deleting project", err)
	}
	s.logger.Info("project deleted", "user_id", userID, "project_id", id)
	return nil
}

// ProcessVideo accepts a video for clipping. It attaches to an existing
// project when ProjectID is set, otherwise creates one, and queues a pending
// clip.
func (s *Service) ProcessVideo(ctx context.Context, userID string, req project.ProcessVideoRequest) (*project.ProcessVideoResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sourceURL := strings.TrimSpace(req.URL)

	var proj *project.Project
	if req.ProjectID != "" {
		existing, err := s.projects.Get(ctx, userID, req.ProjectID)
		if err != nil {
			return nil, mapRepoError("getting project", err)
		}
		proj = existing
	} else {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = project.DefaultName(sourceURL)
		}
		created, err := s.CreateProject(ctx, userID, project.CreateRequest{Name: name, SourceURL: sourceURL})
		if err != nil {
			return nil, err
		}
		proj = created
	}

	clip := project.Clip{
		ID:        uuid.NewString(),
		ProjectID: proj.ID,
		Title:     "Clip from " + project.DefaultName(sourceURL),
		Status:    project.ClipPending,
		CreatedAt: s.now().Format(time.RFC3339),
	}
	if err := s.clips.Create(ctx, userID, &clip); err != nil {
		return nil, mapRepoError("queueing clip", err)
	}
	proj.ClipCount++

	s.logger.Info("video queued", "user_id", userID, "project_id", proj.ID, "clip_id", clip.ID)
	return &project.ProcessVideoResult{Project: proj, Clips: []project.Clip{clip}}, nil
}

// Stats returns the user's dashboard aggregates.
func (s *Service) Stats(ctx context.Context, userID string) (*dashboard.Stats, error) {
	stats, err := s.stats.Stats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}
	return stats, nil
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return project.ErrProjectNotFound
	case errors.Is(err, repository.ErrInvalidInput):
		return fmt.Errorf("%s: %w: %w", op, project.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
