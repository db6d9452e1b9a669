// Package ui runs texrack's interactive terminal surfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui/components/picker"
)

// TerminalPicker implements project.Picker with an inline terminal browser.
type TerminalPicker struct {
	// Start is the first directory shown. Empty means the working directory.
	Start string
	// In and Out override the terminal streams. Nil keeps bubbletea's defaults.
	In  io.Reader
	Out io.Writer

	run func(ctx context.Context, m tea.Model, opts ...tea.ProgramOption) (tea.Model, error)
}

// NewTerminalPicker returns a picker rooted at start.
func NewTerminalPicker(start string, in io.Reader, out io.Writer) *TerminalPicker {
	return &TerminalPicker{Start: start, In: in, Out: out}
}

// PickFile asks for one file matching filter.
func (t *TerminalPicker) PickFile(ctx context.Context, filter project.FileFilter) (string, error) {
	return t.pick(ctx, picker.NewFile(t.Start, filter))
}

// PickDirectory asks for a folder.
func (t *TerminalPicker) PickDirectory(ctx context.Context) (string, error) {
	return t.pick(ctx, picker.NewDirectory(t.Start))
}

func (t *TerminalPicker) pick(ctx context.Context, m picker.Model) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var opts []tea.ProgramOption
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}

	run := t.run
	if run == nil {
		run = runProgram
	}
	final, err := run(ctx, m, opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, tea.ErrProgramKilled) {
			return "", ctxErr
		}
		return "", fmt.Errorf("run picker: %w", err)
	}
	result, ok := final.(picker.Model)
	if !ok {
		return "", fmt.Errorf("unexpected picker model %T", final)
	}
	return result.Selected(), nil
}

func runProgram(ctx context.Context, m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	opts = append(opts, tea.WithContext(ctx))
	return tea.NewProgram(m, opts...).Run()
}
