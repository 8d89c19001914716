package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/querycache"
	"github.com/rpggio/clipdeck/internal/store"
)

// ProjectService reads and mutates projects.
type ProjectService struct {
	api    project.API
	tokens auth.TokenProvider
	cache  *querycache.Cache
	store  *store.Store
	logger *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(api project.API, tokens auth.TokenProvider, cache *querycache.Cache, st *store.Store, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		api:    api,
		tokens: tokens,
		cache:  cache,
		store:  st,
		logger: loggerOrDiscard(logger),
	}
}

// List returns the user's projects. A network read replaces the store's
// project list.
func (s *ProjectService) List(ctx context.Context) ([]project.Project, error) {
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return nil, err
	}

	projects, err := querycache.Query(ctx, s.cache, ProjectsKey,
		func(ctx context.Context) ([]project.Project, error) {
			s.logger.Debug("fetching projects")
			return s.api.ListProjects(ctx, token)
		},
		func(projects []project.Project) {
			s.store.SetProjects(projects)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return cloneProjects(projects), nil
}

// Get returns one project with its clips.
func (s *ProjectService) Get(ctx context.Context, id string) (*project.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", project.ErrInvalidInput)
	}
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return nil, err
	}

	proj, err := querycache.Fetch(ctx, s.cache, ProjectKey(id),
		func(ctx context.Context) (*project.Project, error) {
			s.logger.Debug("fetching project", "project_id", id)
			return s.api.GetProject(ctx, token, id)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj.Clone(), nil
}

// Create creates a project. The new project is inserted into the store as
// soon as the backend confirms it; the list cache is invalidated.
func (s *ProjectService) Create(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return nil, err
	}

	proj, err := s.api.CreateProject(ctx, token, req)
	if err != nil {
		s.logger.Warn("create project failed", "error", err)
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.cache.Invalidate(ProjectsKey, StatsKey)
	s.store.UpsertProject(proj)
	s.store.CloseModal(store.ModalCreateProject)

	s.logger.Info("project created", "project_id", proj.ID)
	return proj.Clone(), nil
}

// Update applies a partial patch to a project.
func (s *ProjectService) Update(ctx context.Context, id string, patch project.UpdateRequest) (*project.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", project.ErrInvalidInput)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return nil, err
	}

	proj, err := s.api.UpdateProject(ctx, token, id, patch)
	if err != nil {
		s.logger.Warn("update project failed", "project_id", id, "error", err)
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.cache.Invalidate(ProjectsKey, ProjectKey(id))
	s.store.PatchProject(id, patch, proj)

	s.logger.Info("project updated", "project_id", id)
	return proj.Clone(), nil
}

// Delete deletes a project. Its detail cache entry is removed outright.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", project.ErrInvalidInput)
	}
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return err
	}

	if err := s.api.DeleteProject(ctx, token, id); err != nil {
		s.logger.Warn("delete project failed", "project_id", id, "error", err)
		return fmt.Errorf("deleting project: %w", err)
	}

	s.cache.Invalidate(ProjectsKey, StatsKey)
	s.cache.Remove(ProjectKey(id))
	s.store.RemoveProject(id)
	s.store.CloseModal(store.ModalDeleteProject)

	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// ProcessVideo submits a video URL for clipping and waits until the backend
// accepts the job. Clip completion is observed through later reads.
func (s *ProjectService) ProcessVideo(ctx context.Context, req project.ProcessVideoRequest) (*project.ProcessVideoResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	token, err := auth.Require(ctx, s.tokens)
	if err != nil {
		return nil, err
	}

	s.logger.Info("submitting video", "url", req.URL, "project_id", req.ProjectID)
	res, err := s.api.ProcessVideo(ctx, token, req)
	if err != nil {
		s.logger.Warn("process video failed", "url", req.URL, "error", err)
		return nil, fmt.Errorf("processing video: %w", err)
	}

	keys := []string{ProjectsKey, StatsKey}
	if req.ProjectID != "" {
		keys = append(keys, ProjectKey(req.ProjectID))
	}
	if res.Project != nil {
		keys = append(keys, ProjectKey(res.Project.ID))
	}
	s.cache.Invalidate(keys...)
	s.store.UpsertProject(res.Project)
	s.store.CloseModal(store.ModalProcessVideo)

	return res, nil
}

func cloneProjects(in []project.Project) []project.Project {
	out := make([]project.Project, 0, len(in))
	for i := range in {
		out = append(out, *in[i].Clone())
	}
	return out
}
