package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/repository"
	"github.com/stretchr/testify/require"
)

func newProject(id, name string, createdAt time.Time) *project.Project {
	return &project.Project{
		ID:          id,
		Name:        name,
		Description: "A test project",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newProject("p1", "Test Project", time.Now())
	proj.SourceURL = "https://videos.example.com/watch?v=1"
	require.NoError(t, repo.Create(ctx, "user1", proj))
	require.Equal(t, "user1", proj.UserID)

	retrieved, err := repo.Get(ctx, "user1", "p1")
	require.NoError(t, err)
	require.Equal(t, proj.ID, retrieved.ID)
	require.Equal(t, proj.Name, retrieved.Name)
	require.Equal(t, proj.Description, retrieved.Description)
	require.Equal(t, proj.SourceURL, retrieved.SourceURL)
	require.Equal(t, 0, retrieved.ClipCount)

	_, err = repo.Get(ctx, "user1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestProjectRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user1", newProject("p1", "One", time.Now())))
	err := repo.Create(ctx, "user1", newProject("p1", "Again", time.Now()))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestProjectRepository_UserIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user1", newProject("p1", "User 1 Project", time.Now())))

	_, err := repo.Get(ctx, "user2", "p1")
	require.Equal(t, repository.ErrNotFound, err)

	list, err := repo.List(ctx, "user2")
	require.NoError(t, err)
	require.Empty(t, list)

	require.Equal(t, repository.ErrNotFound, repo.Delete(ctx, "user2", "p1"))
}

func TestProjectRepository_ListNewestFirstWithClipCounts(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	clips := NewClipRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, "user1", newProject("p1", "Older", base)))
	require.NoError(t, repo.Create(ctx, "user1", newProject("p2", "Newer", base.Add(time.Minute))))
	require.NoError(t, clips.Create(ctx, "user1", &project.Clip{
		ID: "c1", ProjectID: "p1", Title: "Hook", Status: project.ClipReady, CreatedAt: "2026-01-01T00:00:00Z",
	}))

	list, err := repo.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "p2", list[0].ID)
	require.Equal(t, "p1", list[1].ID)
	require.Equal(t, 1, list[1].ClipCount)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newProject("p1", "Before", time.Now())
	require.NoError(t, repo.Create(ctx, "user1", proj))

	proj.Name = "After"
	proj.UpdatedAt = time.Now().Add(time.Minute)
	require.NoError(t, repo.Update(ctx, "user1", proj))

	retrieved, err := repo.Get(ctx, "user1", "p1")
	require.NoError(t, err)
	require.Equal(t, "After", retrieved.Name)

	missing := newProject("missing", "x", time.Now())
	require.Equal(t, repository.ErrNotFound, repo.Update(ctx, "user1", missing))
}

func TestProjectRepository_DeleteCascadesClips(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	clips := NewClipRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user1", newProject("p1", "Doomed", time.Now())))
	require.NoError(t, clips.Create(ctx, "user1", &project.Clip{
		ID: "c1", ProjectID: "p1", Title: "Hook", Status: project.ClipPending, CreatedAt: "2026-01-01T00:00:00Z",
	}))

	require.NoError(t, repo.Delete(ctx, "user1", "p1"))
	_, err := repo.Get(ctx, "user1", "p1")
	require.Equal(t, repository.ErrNotFound, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM clips`).Scan(&count))
	require.Equal(t, 0, count)

	require.Equal(t, repository.ErrNotFound, repo.Delete(ctx, "user1", "p1"))
}
