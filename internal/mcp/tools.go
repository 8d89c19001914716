package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/clipdeck/internal/display"
	"github.com/rpggio/clipdeck/internal/domain/dashboard"
	"github.com/rpggio/clipdeck/internal/domain/project"
)

type listProjectsInput struct{}

type projectIDInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type createProjectInput struct {
	Name        string `json:"name" jsonschema:"Project display name"`
	Description string `json:"description,omitempty" jsonschema:"Project description"`
	SourceURL   string `json:"source_url,omitempty" jsonschema:"Source video URL (http or https)"`
}

type updateProjectInput struct {
	ID          string  `json:"id" jsonschema:"Project ID"`
	Name        *string `json:"name,omitempty" jsonschema:"New display name"`
	Description *string `json:"description,omitempty" jsonschema:"New description"`
	SourceURL   *string `json:"source_url,omitempty" jsonschema:"New source video URL"`
}

type processVideoInput struct {
	URL       string `json:"url" jsonschema:"Video URL to clip (http or https)"`
	ProjectID string `json:"project_id,omitempty" jsonschema:"Attach to this existing project instead of creating one"`
	Name      string `json:"name,omitempty" jsonschema:"Name for the new project (defaults to the URL host and path)"`
}

type dashboardStatsInput struct{}

// projectSummary is the list_projects row.
type projectSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SourceURL string `json:"source_url,omitempty"`
	ClipCount int    `json:"clip_count"`
	Created   string `json:"created"`
}

// statsView pairs raw stats with display strings.
type statsView struct {
	*dashboard.Stats
	Summary string `json:"summary"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects for the current user, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listProjectsInput) (*sdkmcp.CallToolResult, any, error) {
		projects, err := svc.Projects.List(ctx)
		if err != nil {
			return errorResult(err)
		}
		rows := make([]projectSummary, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, projectSummary{
				ID:        p.ID,
				Name:      p.Name,
				SourceURL: p.SourceURL,
				ClipCount: p.ClipCount,
				Created:   display.FormatTime(p.CreatedAt),
			})
		}
		return jsonResult(map[string]any{"projects": rows})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project with its clips",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectIDInput) (*sdkmcp.CallToolResult, any, error) {
		proj, err := svc.Projects.Get(ctx, in.ID)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(proj)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in createProjectInput) (*sdkmcp.CallToolResult, any, error) {
		proj, err := svc.Projects.Create(ctx, project.CreateRequest{
			Name:        in.Name,
			Description: in.Description,
			SourceURL:   in.SourceURL,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(proj)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update a project. Only the fields provided are changed",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in updateProjectInput) (*sdkmcp.CallToolResult, any, error) {
		proj, err := svc.Projects.Update(ctx, in.ID, project.UpdateRequest{
			Name:        in.Name,
			Description: in.Description,
			SourceURL:   in.SourceURL,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(proj)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and all of its clips",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in projectIDInput) (*sdkmcp.CallToolResult, any, error) {
		if err := svc.Projects.Delete(ctx, in.ID); err != nil {
			return errorResult(err)
		}
		return jsonResult(map[string]any{"deleted": in.ID})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "process_video",
		Description: "Submit a video URL for clipping. Returns once the backend accepts the job; clips start as pending",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in processVideoInput) (*sdkmcp.CallToolResult, any, error) {
		res, err := svc.Projects.ProcessVideo(ctx, project.ProcessVideoRequest{
			URL:       in.URL,
			ProjectID: in.ProjectID,
			Name:      in.Name,
		})
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(res)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dashboard_stats",
		Description: "Get aggregate project and clip statistics",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ dashboardStatsInput) (*sdkmcp.CallToolResult, any, error) {
		stats, err := svc.Dashboard.Stats(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(statsView{Stats: stats, Summary: summarizeStats(stats)})
	})
}

func summarizeStats(s *dashboard.Stats) string {
	return fmt.Sprintf("%s projects, %s clips (%s ready, %s in progress, %s failed), %s of footage, average score %s",
		display.FormatCount(s.TotalProjects),
		display.FormatCount(s.TotalClips),
		display.FormatCount(s.ReadyClips),
		display.FormatCount(s.ProcessingClips),
		display.FormatCount(s.FailedClips),
		display.FormatDuration(s.TotalDurationSeconds),
		display.FormatScore(s.AverageViralScore),
	)
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult reports err as a tool error so the model can see and react to it.
func errorResult(err error) (*sdkmcp.CallToolResult, any, error) {
	data, _ := json.Marshal(MapError(err))
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
