package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `clipdeck manages video clipping projects on the clipdeck backend.

Core concepts:
- Project: a named unit of work, optionally tied to a source video URL. It owns clips.
- Clip: a short-form video cut from a source. Clips are produced by the backend pipeline and are read-only here.
- Dashboard stats: aggregate counts across all of the user's projects and clips.

Workflow:
1) Orient: call dashboard_stats, then list_projects.
2) Inspect: get_project returns a project with its clips.
3) Submit: process_video queues a video URL. It returns once the backend accepts the job; clips start as pending.
4) Manage: create_project / update_project (partial patch) / delete_project.

Reads are cached briefly; every mutation refreshes what it affects, so a read after a write reflects the write.

Docs:
- clipdeck://docs/clip-statuses (what each clip status means)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "clipdeck://docs/clip-statuses",
		Name:        "clip_statuses",
		Title:       "Clip statuses",
		Description: "Meaning of each clip status and how statuses roll up into dashboard stats.",
		Content: `# Clip statuses

| Status | Meaning |
|--------|---------|
| ` + "`pending`" + ` | Queued by process_video; the pipeline has not picked it up yet. |
| ` + "`processing`" + ` | The pipeline is cutting and scoring the clip. |
| ` + "`ready`" + ` | Done. Duration, thumbnail and viral score are available. |
| ` + "`failed`" + ` | The pipeline gave up on this clip. Submit the video again to retry. |

## Dashboard rollup

- ` + "`processing_clips`" + ` counts both pending and processing clips.
- ` + "`average_viral_score`" + ` only covers scored clips and is absent when none are scored.

## Dates

Clip ` + "`created_at`" + ` is passed through from the pipeline as-is and can be malformed.
Display code shows "Unknown date" instead of failing.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
