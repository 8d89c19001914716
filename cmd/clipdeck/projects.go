package main

import (
	"fmt"

	"github.com/rpggio/clipdeck/internal/domain/project"
	"github.com/rpggio/clipdeck/internal/store"
	"github.com/spf13/cobra"
)

func newProjectsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "List and manage projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(opts),
		newProjectsGetCmd(opts),
		newProjectsCreateCmd(opts),
		newProjectsUpdateCmd(opts),
		newProjectsDeleteCmd(opts),
	)
	return cmd
}

func newProjectsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.client.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(a.out, projects)
			}
			printProjects(a.out, projects)
			return nil
		},
	}
}

func newProjectsGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project and its clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			proj, err := a.client.Projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(a.out, proj)
			}
			printProject(a.out, proj)
			return nil
		},
	}
}

func newProjectsCreateCmd(opts *rootOptions) *cobra.Command {
	var req project.CreateRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.client.Store.OpenModal(store.ModalCreateProject)
			proj, err := a.client.Projects.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(a.out, proj)
			}
			fmt.Fprintf(a.out, "Created project %s (%s)\n", proj.Name, proj.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "project name")
	cmd.Flags().StringVar(&req.Description, "description", "", "project description")
	cmd.Flags().StringVar(&req.SourceURL, "source-url", "", "source video URL")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCmd(opts *rootOptions) *cobra.Command {
	var name, description, sourceURL string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project; only the flags given are changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch project.UpdateRequest
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("source-url") {
				patch.SourceURL = &sourceURL
			}

			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			proj, err := a.client.Projects.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if a.json {
				return writeJSON(a.out, proj)
			}
			fmt.Fprintf(a.out, "Updated project %s (%s)\n", proj.Name, proj.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new project name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "new source video URL")
	return cmd
}

func newProjectsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and its clips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.client.Store.OpenModal(store.ModalDeleteProject)
			if err := a.client.Projects.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			if a.json {
				return writeJSON(a.out, map[string]string{"deleted": args[0]})
			}
			fmt.Fprintf(a.out, "Deleted project %s\n", args[0])
			return nil
		},
	}
}
