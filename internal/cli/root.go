// Package cli implements the texrack command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazyvibe/texrack/internal/app"
	"github.com/lazyvibe/texrack/internal/fsys"
	"github.com/lazyvibe/texrack/internal/logging"
	"github.com/lazyvibe/texrack/internal/model"
	"github.com/lazyvibe/texrack/internal/notify"
	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui"
)

// version is set at build time.
var version = "dev"

type options struct {
	configDir string
	project   string
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the texrack command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "texrack",
		Short: "Manage texture rack projects",
		Long: `texrack manages folder-based texture rack projects.

A project is a folder holding manifest.json and an assets/ folder with the
imported textures. Projects live under <documents>/Projects unless opened by
explicit location.

Examples:
  # Create a project and make it current
  texrack create "Spring Rack" --open

  # Add a texture to the current project
  texrack texture add --file ~/Pictures/brick.png

  # Check that manifest and assets agree
  texrack verify`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/texrack)")
	root.PersistentFlags().StringVarP(&opts.project, "project", "p", "", "project folder name or location (default: current project)")

	root.AddCommand(
		newCreateCmd(opts),
		newOpenCmd(opts),
		newCurrentCmd(opts),
		newImportCmd(opts),
		newListCmd(opts),
		newTextureCmd(opts),
		newVerifyCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// session bundles what a command needs for one run.
type session struct {
	cfg     *app.Config
	logger  *zap.Logger
	manager *project.Manager
}

// open loads configuration and builds the manager. A nil picker selects
// the interactive terminal picker.
func (o *options) open(cmd *cobra.Command, picker project.Picker) (*session, error) {
	dir := o.configDir
	if dir == "" {
		var err error
		if dir, err = app.ConfigDir(); err != nil {
			return nil, fmt.Errorf("locate config directory: %w", err)
		}
	}
	cfg, err := app.LoadConfig(dir)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if picker == nil {
		picker = terminalPicker(cmd)
	}

	manager, err := project.NewManager(cfg.Roots(), fsys.NewOS(), picker,
		project.WithLogger(logger),
		project.WithNotifier(notify.NewDispatcher(notify.Config{Desktop: cfg.Notify.Desktop}, logger)),
	)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, manager: manager}, nil
}

func (s *session) close() {
	_ = logging.Sync(s.logger)
}

// target opens the project named by identifier, or re-opens the current
// project so the manifest is read fresh from disk.
func (s *session) target(ctx context.Context, identifier string) (*model.Project, error) {
	if identifier == "" {
		current, err := s.manager.CurrentProject(ctx)
		if err != nil {
			if errors.Is(err, project.ErrNoCurrentProject) {
				return nil, fmt.Errorf("%w: pass --project or run 'texrack open'", err)
			}
			return nil, err
		}
		identifier = current.Path
	}
	return s.manager.OpenProject(ctx, identifier)
}

func terminalPicker(cmd *cobra.Command) project.Picker {
	var in io.Reader
	if r := cmd.InOrStdin(); r != os.Stdin {
		in = r
	}
	return ui.NewTerminalPicker("", in, cmd.ErrOrStderr())
}
