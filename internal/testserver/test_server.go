// Package testserver runs the reference backend on an httptest server backed
// by an in-memory database.
package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/clipdeck/internal/backend"
	"github.com/rpggio/clipdeck/internal/sqlite"
	"github.com/rpggio/clipdeck/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	Service *backend.Service
	Token   string
	UserID  string

	keys *sqlite.APIKeyRepository
}

func New(t *testing.T, token, userID string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	svc := backend.NewService(
		sqlite.NewProjectRepository(db),
		sqlite.NewClipRepository(db),
		sqlite.NewStatsRepository(db),
		nil,
	)
	keys := sqlite.NewAPIKeyRepository(db)

	server := httptest.NewServer(transport.NewServer(svc, transport.AuthMiddleware(keys), nil))

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Service: svc,
		Token:   token,
		UserID:  userID,
		keys:    keys,
	}

	require.NoError(t, ts.AddAPIKey(token, userID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// URL returns the base URL of the backend.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

func (ts *TestServer) AddAPIKey(token, userID string) error {
	return ts.keys.Add(context.Background(), token, userID, "test")
}
