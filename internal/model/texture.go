package model

import "strings"

// Texture is a single imported image in a project.
type Texture struct {
	// ID is the time-ordered unique identifier of the texture.
	ID string `json:"id"`
	// OriginalName is the basename of the file the texture was imported from.
	OriginalName string `json:"originalName"`
	// Extension is the source suffix including its leading dot.
	Extension string `json:"extension"`
	// Size is the asset size in bytes, when known.
	Size *int64 `json:"size,omitempty"`
}

// Filename derives the physical asset filename.
func (t Texture) Filename() string {
	return TexturePrefix + t.ID + t.Extension
}

// ParseTextureFilename splits an asset filename back into id and extension.
// It reports false for names that were not produced by Filename.
func ParseTextureFilename(name string) (id, ext string, ok bool) {
	if !strings.HasPrefix(name, TexturePrefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(name, TexturePrefix)
	if i := strings.LastIndex(rest, "."); i > 0 {
		return rest[:i], rest[i:], true
	}
	if rest == "" {
		return "", "", false
	}
	return rest, "", true
}
