package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui/styles"
)

// errDrift makes verify exit non-zero when manifest and assets disagree.
var errDrift = errors.New("manifest and assets disagree")

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare the manifest with the assets folder",
		Long: `Compare the manifest's texture list with the files in assets/. Textures
without an asset are reported missing; texture files without a manifest entry
are reported as orphans. Exits non-zero when they disagree.`,
		Args: cobra.NoArgs,
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
			report, err := s.manager.Verify(cmd.Context(), p)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			if !report.Consistent() {
				return errDrift
			}
			return nil
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report manifest and asset drift as files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd, project.StaticPicker{})
			if err != nil {
				return err
			}
			defer s.close()

			ctx := cmd.Context()
			p, err := s.target(ctx, opts.project)
			if err != nil {
				return err
			}
			reports, err := s.manager.Watch(ctx, p, debounce)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styles.KeyValue("watching", p.Path))
			for report := range reports {
				fmt.Fprint(out, styles.Dim.Render(time.Now().Format("15:04:05"))+" ")
				printReport(out, report)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", project.DefaultDebounce, "quiet period before checking")
	return cmd
}
