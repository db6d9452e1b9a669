package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui/styles"
)

func newTextureCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texture",
		Short: "Manage the textures of a project",
		Long: `Manage the textures of a project. Commands act on the current project
unless --project names another one, which then becomes current.`,
	}
	cmd.AddCommand(
		newTextureAddCmd(opts),
		newTextureRemoveCmd(opts),
		newTexturePathCmd(opts),
		newTextureListCmd(opts),
	)
	return cmd
}

func newTextureAddCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Copy an image into the project's assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var picker project.Picker
			if file != "" {
				picker = project.StaticPicker{File: file}
			}
			s, err := opts.open(cmd, picker)
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.target(cmd.Context(), opts.project)
			if err != nil {
				return err
			}
			texture, err := s.manager.AddTexture(cmd.Context(), p)
			if err != nil {
				return err
			}
			if texture == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.Dim.Render("no file chosen"))
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.KeyValue("added", texture.OriginalName))
			fmt.Fprintln(out, styles.KeyValue("id", styles.ID.Render(texture.ID)))
			fmt.Fprintln(out, styles.KeyValue("path", s.manager.TexturePath(p, *texture).Absolute()))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "image to add (skips the picker)")
	return cmd
}

func newTextureRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <texture-id>",
		Short: "Delete a texture and its asset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.target(cmd.Context(), opts.project)
			if err != nil {
				return err
			}
			removed, err := s.manager.RemoveTexture(cmd.Context(), p, args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("texture %s was not removed", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.KeyValue("removed", args[0]))
			return nil
		},
	}
}

func newTexturePathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path <texture-id>",
		Short: "Print the asset location of a texture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.target(cmd.Context(), opts.project)
			if err != nil {
				return err
			}
			i := p.Manifest.FindTexture(args[0])
			if i < 0 {
				return fmt.Errorf("texture %s not found in %s", args[0], p.DisplayName())
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.manager.TexturePath(p, p.Manifest.Textures[i]).Absolute())
			return nil
		},
	}
}

func newTextureListCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the textures of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			p, err := s.target(cmd.Context(), opts.project)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), p.Manifest.Textures)
			}
			printTextures(cmd.OutOrStdout(), s.manager, p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print textures as JSON")
	return cmd
}
