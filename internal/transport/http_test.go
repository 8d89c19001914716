package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	userID   string
	projects map[string]*project.Project
	err      error
}

func newFakeService() *fakeService {
	return &fakeService{projects: map[string]*project.Project{}}
}

func (f *fakeService) CreateProject(_ context.Context, userID string, req project.CreateRequest) (*project.Project, error) {
	f.userID = userID
	if err := req.Validate(); err != nil {
		return nil, err
	}
	proj := &project.Project{ID: "p-new", Name: req.Name, CreatedAt: time.Now()}
	f.projects[proj.ID] = proj
	return proj, nil
}

func (f *fakeService) GetProject(_ context.Context, userID, id string) (*project.Project, error) {
	f.userID = userID
	proj, ok := f.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return proj, nil
}

func (f *fakeService) ListProjects(_ context.Context, userID string) ([]project.Project, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	out := []project.Project{}
	for _, p := range f.projects {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeService) UpdateProject(_ context.Context, userID, id string, patch project.UpdateRequest) (*project.Project, error) {
	f.userID = userID
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	proj, ok := f.projects[id]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	proj.Apply(patch)
	return proj, nil
}

func (f *fakeService) DeleteProject(_ context.Context, userID, id string) error {
	f.userID = userID
	if _, ok := f.projects[id]; !ok {
		return project.ErrProjectNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeService) ProcessVideo(_ context.Context, userID string, req project.ProcessVideoRequest) (*project.ProcessVideoResult, error) {
	f.userID = userID
	if err := req.Validate(); err != nil {
		return nil, err
	}
	proj := &project.Project{ID: "p-video", Name: project.DefaultName(req.URL), ClipCount: 1}
	return &project.ProcessVideoResult{
		Project: proj,
		Clips:   []project.Clip{{ID: "c1", ProjectID: proj.ID, Status: project.ClipPending}},
	}, nil
}

func (f *fakeService) Stats(_ context.Context, userID string) (*dashboard.Stats, error) {
	f.userID = userID
	return &dashboard.Stats{TotalProjects: len(f.projects)}, nil
}

func newTestServer(t *testing.T, svc Service) *httptest.Server {
	t.Helper()
	resolver := &testResolver{tokenToUser: map[string]string{"token": "user1"}}
	server := httptest.NewServer(NewServer(svc, AuthMiddleware(resolver), nil))
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorDetail {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestHTTPServer_Health(t *testing.T) {
	server := httptest.NewServer(NewServer(newFakeService(), nil, nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_AuthCallbackRedirectsToDashboard(t *testing.T) {
	server := httptest.NewServer(NewServer(newFakeService(), nil, nil))
	t.Cleanup(server.Close)

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(server.URL + "/auth/callback")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, auth.DashboardPath, resp.Header.Get("Location"))
}

func TestHTTPServer_RequiresAuth(t *testing.T) {
	server := newTestServer(t, newFakeService())

	resp, err := http.Get(server.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHTTPServer_ProjectLifecycle(t *testing.T) {
	svc := newFakeService()
	server := newTestServer(t, svc)

	resp := doRequest(t, http.MethodPost, server.URL+"/api/projects", `{"name":"Launch"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	require.Equal(t, "user1", svc.userID)

	var created project.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, "Launch", created.Name)

	resp = doRequest(t, http.MethodGet, server.URL+"/api/projects", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Projects []project.Project `json:"projects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Projects, 1)

	resp = doRequest(t, http.MethodPatch, server.URL+"/api/projects/"+created.ID, `{"description":"new"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, server.URL+"/api/projects/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, server.URL+"/api/projects/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "not_found", decodeError(t, resp).Code)
}

func TestHTTPServer_ErrorMapping(t *testing.T) {
	svc := newFakeService()
	server := newTestServer(t, svc)

	resp := doRequest(t, http.MethodPost, server.URL+"/api/projects", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_input", decodeError(t, resp).Code)

	resp = doRequest(t, http.MethodPost, server.URL+"/api/projects", `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	svc.err = errors.New("database exploded")
	resp = doRequest(t, http.MethodGet, server.URL+"/api/projects", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	detail := decodeError(t, resp)
	require.Equal(t, "internal", detail.Code)
	require.NotContains(t, detail.Message, "exploded")
}

func TestHTTPServer_ProcessVideo(t *testing.T) {
	server := newTestServer(t, newFakeService())

	resp := doRequest(t, http.MethodPost, server.URL+"/api/videos/process", `{"url":"https://v.example.com/watch?v=1"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var res project.ProcessVideoResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Equal(t, "p-video", res.Project.ID)
	require.Len(t, res.Clips, 1)
}

func TestHTTPServer_Stats(t *testing.T) {
	server := newTestServer(t, newFakeService())

	resp := doRequest(t, http.MethodGet, server.URL+"/api/dashboard/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
