package project

import "time"

// ClipStatus is the processing state of a clip.
type ClipStatus string

const (
	ClipPending    ClipStatus = "pending"
	ClipProcessing ClipStatus = "processing"
	ClipReady      ClipStatus = "ready"
	ClipFailed     ClipStatus = "failed"
)

// Valid reports whether s is a known clip status.
func (s ClipStatus) Valid() bool {
	switch s {
	case ClipPending, ClipProcessing, ClipReady, ClipFailed:
		return true
	}
	return false
}

// Project represents a user-owned unit of work containing clips.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	ClipCount   int       `json:"clip_count"`
	Clips       []Clip    `json:"clips,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clip is a generated short-form video artifact. Clips are produced by the
// processing pipeline and are read-only on the client.
type Clip struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Title           string     `json:"title"`
	Status          ClipStatus `json:"status"`
	DurationSeconds float64    `json:"duration_seconds"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	ViralScore      *float64   `json:"viral_score,omitempty"`
	// CreatedAt is passed through as reported by the pipeline and may be malformed.
	CreatedAt string `json:"created_at"`
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// UpdateRequest is a partial patch. Nil fields are left untouched.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SourceURL   *string `json:"source_url,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (u UpdateRequest) Empty() bool {
	return u.Name == nil && u.Description == nil && u.SourceURL == nil
}

// Apply applies the patch to p in place.
func (p *Project) Apply(patch UpdateRequest) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.SourceURL != nil {
		p.SourceURL = *patch.SourceURL
	}
}

// Clone returns a deep copy of p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Clips != nil {
		cp.Clips = make([]Clip, len(p.Clips))
		for i, c := range p.Clips {
			if c.ViralScore != nil {
				score := *c.ViralScore
				c.ViralScore = &score
			}
			cp.Clips[i] = c
		}
	}
	return &cp
}

// ProcessVideoRequest submits a video URL for clipping.
type ProcessVideoRequest struct {
	URL       string `json:"url"`
	ProjectID string `json:"project_id,omitempty"`
	Name      string `json:"name,omitempty"`
}

// ProcessVideoResult is the backend's acceptance of a processing job.
type ProcessVideoResult struct {
	Project *Project `json:"project"`
	Clips   []Clip   `json:"clips"`
}
