package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestStore_SetAndUpsert(t *testing.T) {
	s := New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetProjects([]project.Project{
		{ID: "p1", Name: "One", CreatedAt: created},
		{ID: "p2", Name: "Two", CreatedAt: created},
	})

	s.UpsertProject(&project.Project{ID: "p3", Name: "Three"})
	s.UpsertProject(&project.Project{ID: "p1", Name: "One v2", CreatedAt: created})

	want := []project.Project{
		{ID: "p3", Name: "Three"},
		{ID: "p1", Name: "One v2", CreatedAt: created},
		{ID: "p2", Name: "Two", CreatedAt: created},
	}
	if diff := cmp.Diff(want, s.Projects()); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_PatchProject(t *testing.T) {
	s := New()
	s.SetProjects([]project.Project{{ID: "p1", Name: "One", Description: "keep"}})

	ok := s.PatchProject("p1", project.UpdateRequest{Name: strPtr("Renamed")}, nil)
	require.True(t, ok)

	p, found := s.Project("p1")
	require.True(t, found)
	require.Equal(t, "Renamed", p.Name)
	require.Equal(t, "keep", p.Description)

	require.False(t, s.PatchProject("missing", project.UpdateRequest{Name: strPtr("x")}, nil))
}

func TestStore_PatchProjectAdoptsConfirmedFields(t *testing.T) {
	s := New()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetProjects([]project.Project{{ID: "p1", Name: "Draft", Description: "keep", ClipCount: 1, UpdatedAt: created}})

	confirmed := &project.Project{
		ID:          "p1",
		Name:        "Final",
		Description: "server side",
		ClipCount:   3,
		UpdatedAt:   created.Add(time.Minute),
	}
	require.True(t, s.PatchProject("p1", project.UpdateRequest{Name: strPtr("  Final  ")}, confirmed))

	p, found := s.Project("p1")
	require.True(t, found)
	require.Equal(t, "Final", p.Name)
	require.Equal(t, "keep", p.Description, "unpatched fields stay local")
	require.Equal(t, 3, p.ClipCount)
	require.True(t, p.UpdatedAt.Equal(confirmed.UpdatedAt))

	other := &project.Project{ID: "p2", Name: "Elsewhere"}
	require.True(t, s.PatchProject("p1", project.UpdateRequest{Name: strPtr("Again")}, other))
	p, _ = s.Project("p1")
	require.Equal(t, "Again", p.Name)
	require.Equal(t, 3, p.ClipCount)
}

func TestStore_RemoveProject(t *testing.T) {
	s := New()
	s.SetProjects([]project.Project{{ID: "p1"}, {ID: "p2"}})

	require.True(t, s.RemoveProject("p1"))
	require.False(t, s.RemoveProject("p1"))
	require.Equal(t, 1, s.Len())
	_, found := s.Project("p1")
	require.False(t, found)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	s.SetProjects([]project.Project{{ID: "p1", Name: "One"}})

	p, _ := s.Project("p1")
	p.Name = "mutated"
	list := s.Projects()
	list[0].Name = "mutated"

	stored, _ := s.Project("p1")
	require.Equal(t, "One", stored.Name)
}

func TestStore_Modals(t *testing.T) {
	s := New()
	require.False(t, s.ModalOpen(ModalCreateProject))
	s.OpenModal(ModalCreateProject)
	require.True(t, s.ModalOpen(ModalCreateProject))
	require.False(t, s.ModalOpen(ModalProcessVideo))
	s.CloseModal(ModalCreateProject)
	require.False(t, s.ModalOpen(ModalCreateProject))
}

func TestStore_SubscribeCoalesces(t *testing.T) {
	s := New()
	ch, unsubscribe := s.Subscribe()

	s.UpsertProject(&project.Project{ID: "p1"})
	s.UpsertProject(&project.Project{ID: "p2"})

	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification")
	}
	select {
	case <-ch:
		t.Fatal("notifications should coalesce")
	default:
	}

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	require.False(t, open)

	s.UpsertProject(&project.Project{ID: "p3"})
}

func TestDefault_IsShared(t *testing.T) {
	require.Same(t, Default(), Default())
}
