// Package picker provides the interactive terminal file and folder chooser.
package picker

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lazyvibe/texrack/internal/project"
	"github.com/lazyvibe/texrack/internal/ui/keys"
	"github.com/lazyvibe/texrack/internal/ui/styles"
)

// Mode selects what the picker returns.
type Mode int

const (
	// ModeFile picks a single file.
	ModeFile Mode = iota
	// ModeDirectory picks a folder.
	ModeDirectory
)

// Model wraps the bubbles file browser with cancel and folder-selection keys.
type Model struct {
	browser filepicker.Model
	mode    Mode
	title   string
	keys    keys.KeyMap

	selected  string
	cancelled bool
	notice    string
}

// NewFile returns a picker for files matching filter, starting in dir.
func NewFile(dir string, filter project.FileFilter) Model {
	browser := newBrowser(dir)
	browser.AllowedTypes = allowedTypes(filter.Extensions)
	title := "Choose a file"
	if filter.Name != "" {
		title = "Choose " + strings.ToLower(filter.Name)
	}
	return Model{browser: browser, mode: ModeFile, title: title, keys: keys.DefaultKeyMap()}
}

// NewDirectory returns a folder picker starting in dir.
func NewDirectory(dir string) Model {
	browser := newBrowser(dir)
	browser.DirAllowed = true
	browser.FileAllowed = false
	return Model{browser: browser, mode: ModeDirectory, title: "Choose a project folder", keys: keys.DefaultKeyMap()}
}

func newBrowser(dir string) filepicker.Model {
	browser := filepicker.New()
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = "."
		}
	}
	browser.CurrentDirectory = dir
	browser.ShowPermissions = false
	browser.AutoHeight = true
	browser.Styles.Cursor = browser.Styles.Cursor.Foreground(styles.Primary)
	browser.Styles.Selected = browser.Styles.Selected.Foreground(styles.Primary).Bold(true)
	browser.Styles.Directory = browser.Styles.Directory.Foreground(styles.Accent)
	return browser
}

// allowedTypes turns bare extensions into the suffixes the browser matches,
// in both cases.
func allowedTypes(extensions []string) []string {
	out := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		ext = "." + strings.TrimPrefix(strings.ToLower(ext), ".")
		out = append(out, ext)
		if upper := strings.ToUpper(ext); upper != ext {
			out = append(out, upper)
		}
	}
	return out
}

// Init starts reading the first directory.
func (m Model) Init() tea.Cmd {
	return m.browser.Init()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case m.mode == ModeDirectory && key.Matches(msg, m.keys.SelectHere):
			m.selected = m.browser.CurrentDirectory
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.browser, cmd = m.browser.Update(msg)

	if ok, path := m.browser.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.browser.DidSelectDisabledFile(msg); ok {
		m.notice = path + " is not a supported type"
	}
	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(m.browser.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.browser.View())
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.Caution.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.help())
	return styles.Frame.Render(b.String())
}

func (m Model) help() string {
	parts := []string{"enter select", "h back", "l open"}
	for _, binding := range m.keys.ShortHelp(m.mode == ModeDirectory) {
		h := binding.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.Help.Render(strings.Join(parts, " • "))
}

// Selected returns the chosen path, or "" when nothing was chosen.
func (m Model) Selected() string {
	if m.cancelled {
		return ""
	}
	return m.selected
}

// Cancelled reports whether the user quit without choosing.
func (m Model) Cancelled() bool {
	return m.cancelled
}
