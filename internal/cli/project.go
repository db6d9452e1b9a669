package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui/styles"
)

func newCreateCmd(opts *options) *cobra.Command {
	var openAfter bool
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project in the projects folder",
		Long: `Create a project folder named after the sanitized name, with an empty
assets/ folder and a fresh manifest. An existing folder is never overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.manager.CreateProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if openAfter {
				if p, err = s.manager.OpenProject(cmd.Context(), p.Path); err != nil {
					return err
				}
			}
			printProject(cmd.OutOrStdout(), "created", p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&openAfter, "open", false, "make the new project current")
	return cmd
}

func newOpenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name-or-location>",
		Short: "Open a project and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.manager.OpenProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), "opened", p)
			return nil
		},
	}
}

func newCurrentCmd(opts *options) *cobra.Command {
	var forget bool
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show or forget the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			if forget {
				if err := s.manager.ClearCurrent(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), styles.Dim.Render("current project cleared"))
				return nil
			}
			p, err := s.manager.CurrentProject(cmd.Context())
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), "current", p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&forget, "clear", false, "forget the current project")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a project folder into the projects folder",
		Long: `Copy a project folder, chosen with --dir or the interactive picker, into the
projects folder under its sanitized manifest name. The copy is not opened.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var picker project.Picker
			if dir != "" {
				picker = project.StaticPicker{Directory: dir}
			}
			s, err := opts.open(cmd, picker)
			if err != nil {
				return err
			}
			defer s.close()

			location, err := s.manager.ImportProject(cmd.Context())
			if errors.Is(err, project.ErrUserCancelled) {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.Dim.Render("import cancelled"))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.KeyValue("imported", location))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "project folder to import (skips the picker)")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in the projects folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			projects, err := s.manager.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), projects)
			}
			printProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print projects as JSON")
	return cmd
}
