package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/clipdeck/internal/apiclient"
	"github.com/rpggio/clipdeck/internal/auth"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

// APIError represents an MCP tool error payload.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps client errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return &APIError{Code: "UNAUTHENTICATED", Message: "no auth token available", RecoveryHint: "Set CLIPDECK_TOKEN or client credentials"}
	case errors.Is(err, apiclient.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "token rejected by backend", RecoveryHint: "Refresh or replace the token"}
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, apiclient.ErrNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, apiclient.ErrBadRequest):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
