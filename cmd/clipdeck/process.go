package main

import (
	"fmt"
	"io"

	"github.com/rpggio/clipdeck/internal/display"
	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/store"
	"github.com/spf13/cobra"
)

func newProcessCmd(opts *rootOptions) *cobra.Command {
	var projectID, name string
	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Submit a video URL for clipping",
		Long:  "Submit a video URL for clipping. Returns once the backend accepts the job; clips start as pending.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.client.Store.OpenModal(store.ModalProcessVideo)
			res, err := a.client.Projects.ProcessVideo(cmd.Context(), project.ProcessVideoRequest{
				URL:       args[0],
				ProjectID: projectID,
				Name:      name,
			})
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(a.out, res)
			}
			printQueued(a.out, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "attach to an existing project ID")
	cmd.Flags().StringVar(&name, "name", "", "name for the new project")
	return cmd
}

func printQueued(w io.Writer, res *project.ProcessVideoResult) {
	if res.Project != nil {
		fmt.Fprintf(w, "Queued %d clip(s) in project %s (%s)\n", len(res.Clips), res.Project.Name, res.Project.ID)
	} else {
		fmt.Fprintf(w, "Queued %d clip(s)\n", len(res.Clips))
	}
	for _, c := range res.Clips {
		fmt.Fprintf(w, "  %s %s\n", display.StatusBadge(c.Status), c.ID)
	}
}
