// Package store holds process-wide client state: the project list the
// dashboard renders and which modals are open.
package store

import (
	"sync"

	"github.com/rpggio/clipdeck/internal/domain/project"
)

// Modal identifies a dialog whose visibility is tracked in the store.
type Modal string

const (
	ModalCreateProject Modal = "create_project"
	ModalProcessVideo  Modal = "process_video"
	ModalDeleteProject Modal = "delete_project"
)

// Store is safe for concurrent use. Projects are kept in server order; new
// projects are prepended.
type Store struct {
	mu       sync.RWMutex
	projects []*project.Project
	modals   map[Modal]bool
	subs     map[int]chan struct{}
	nextSub  int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		modals: make(map[Modal]bool),
		subs:   make(map[int]chan struct{}),
	}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = New()
	})
	return defaultStore
}

// SetProjects replaces the project list.
func (s *Store) SetProjects(projects []project.Project) {
	s.mu.Lock()
	s.projects = make([]*project.Project, 0, len(projects))
	for i := range projects {
		s.projects = append(s.projects, projects[i].Clone())
	}
	s.mu.Unlock()
	s.notify()
}

// UpsertProject replaces the project with the same ID or prepends it.
func (s *Store) UpsertProject(p *project.Project) {
	if p == nil {
		return
	}
	s.mu.Lock()
	if i := s.indexLocked(p.ID); i >= 0 {
		s.projects[i] = p.Clone()
	} else {
		s.projects = append([]*project.Project{p.Clone()}, s.projects...)
	}
	s.mu.Unlock()
	s.notify()
}

// PatchProject applies patch to the stored project. When confirmed is the
// server's copy of the same project, patched fields take its normalized values
// and server-owned fields (updated_at, clip_count) are copied from it. It
// reports whether the project was present.
func (s *Store) PatchProject(id string, patch project.UpdateRequest, confirmed *project.Project) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	updated := s.projects[i].Clone()
	updated.Apply(patch)
	if confirmed != nil && confirmed.ID == id {
		updated.Apply(project.UpdateRequest{
			Name:        pick(patch.Name, confirmed.Name),
			Description: pick(patch.Description, confirmed.Description),
			SourceURL:   pick(patch.SourceURL, confirmed.SourceURL),
		})
		updated.UpdatedAt = confirmed.UpdatedAt
		updated.ClipCount = confirmed.ClipCount
	}
	s.projects[i] = updated
	s.mu.Unlock()
	s.notify()
	return true
}

// RemoveProject deletes the project. It reports whether it was present.
func (s *Store) RemoveProject(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	s.mu.Unlock()
	s.notify()
	return true
}

// Projects returns a copy of the project list.
func (s *Store) Projects() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, *p.Clone())
	}
	return out
}

// Project returns a copy of the project with id.
func (s *Store) Project(id string) (*project.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.projects[i].Clone(), true
	}
	return nil, false
}

// Len returns the number of projects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *Store) indexLocked(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// OpenModal marks m visible.
func (s *Store) OpenModal(m Modal) {
	s.setModal(m, true)
}

// CloseModal marks m hidden.
func (s *Store) CloseModal(m Modal) {
	s.setModal(m, false)
}

func (s *Store) setModal(m Modal, open bool) {
	s.mu.Lock()
	changed := s.modals[m] != open
	s.modals[m] = open
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// ModalOpen reports whether m is visible.
func (s *Store) ModalOpen(m Modal) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modals[m]
}

// Subscribe returns a channel that receives a value after every change.
// Notifications coalesce: a slow reader sees at most one pending signal.
// Call the returned function to unsubscribe.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func pick(patched *string, confirmed string) *string {
	if patched == nil {
		return nil
	}
	return &confirmed
}
