package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

// Service is the backend behavior served over HTTP.
type Service interface {
	CreateProject(ctx context.Context, userID string, req project.CreateRequest) (*project.Project, error)
	GetProject(ctx context.Context, userID, id string) (*project.Project, error)
	ListProjects(ctx context.Context, userID string) ([]project.Project, error)
	UpdateProject(ctx context.Context, userID, id string, patch project.UpdateRequest) (*project.Project, error)
	DeleteProject(ctx context.Context, userID, id string) error
	ProcessVideo(ctx context.Context, userID string, req project.ProcessVideoRequest) (*project.ProcessVideoResult, error)
	Stats(ctx context.Context, userID string) (*dashboard.Stats, error)
}

// Server wires HTTP handlers.
type Server struct {
	svc    Service
	logger *slog.Logger
}

// NewServer creates the REST router. authMiddleware guards /api routes.
func NewServer(svc Service, authMiddleware func(http.Handler) http.Handler, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{svc: svc, logger: logger}

	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)

	r.HandleFunc("/health", srv.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/auth/callback", srv.handleAuthCallback).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}
	api.HandleFunc("/dashboard/stats", srv.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/projects", srv.handleListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", srv.handleCreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", srv.handleGetProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", srv.handleUpdateProject).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{id}", srv.handleDeleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/videos/process", srv.handleProcessVideo).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleAuthCallback lands a completed sign-in on the dashboard.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, auth.DashboardPath, http.StatusFound)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	stats, err := s.svc.Stats(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	projects, err := s.svc.ListProjects(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	var req project.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	proj, err := s.svc.CreateProject(r.Context(), userID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	proj, err := s.svc.GetProject(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	var patch project.UpdateRequest
	if err := decodeBody(r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}
	proj, err := s.svc.UpdateProject(r.Context(), userID, mux.Vars(r)["id"], patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	if err := s.svc.DeleteProject(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProcessVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.user(w, r)
	if !ok {
		return
	}
	var req project.ProcessVideoRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.svc.ProcessVideo(r.Context(), userID, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, res)
}

func (s *Server) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := UserFromContext(r.Context())
	if !ok || userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing user")
		return "", false
	}
	return userID, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	requestID, _ := RequestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", requestID, "error", err)
		writeError(w, status, code, "internal error")
		return
	}
	s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "request_id", requestID, "error", err)
	writeError(w, status, code, err.Error())
}
