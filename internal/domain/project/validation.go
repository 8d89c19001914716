package project

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks a create request.
func (r CreateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if r.SourceURL != "" {
		if err := validateVideoURL(r.SourceURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a partial patch.
func (u UpdateRequest) Validate() error {
	if u.Empty() {
		return fmt.Errorf("%w: empty patch", ErrInvalidInput)
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("%w: name cannot be blank", ErrInvalidInput)
	}
	if u.SourceURL != nil && *u.SourceURL != "" {
		if err := validateVideoURL(*u.SourceURL); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a processing submission.
func (r ProcessVideoRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	return validateVideoURL(r.URL)
}

func validateVideoURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: invalid video url %q", ErrInvalidInput, raw)
	}
	return nil
}

// DefaultName derives a project name from a video URL.
func DefaultName(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "Untitled project"
	}
	name := u.Host + strings.TrimSuffix(u.Path, "/")
	if q := u.Query().Get("v"); q != "" {
		name += "?v=" + q
	}
	return name
}
