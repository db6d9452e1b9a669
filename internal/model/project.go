package model

// Project pairs a project root folder with its manifest.
type Project struct {
	// Path is the absolute location of the project's root folder.
	Path string `json:"path"`
	// Manifest is owned exclusively by the project.
	Manifest Manifest `json:"manifest"`
}

// DisplayName returns the name to display in the UI.
// Falls back to path basename if name is empty.
func (p *Project) DisplayName() string {
	if p.Manifest.Name != "" {
		return p.Manifest.Name
	}
	for i := len(p.Path) - 1; i >= 0; i-- {
		if p.Path[i] == '/' || p.Path[i] == '\\' {
			return p.Path[i+1:]
		}
	}
	return p.Path
}
