// Package model defines the project container records for texrack.
package model

const (
	// ManifestVersion is the literal version tag written to every manifest.
	ManifestVersion = "1.0"
	// ManifestFile is the manifest filename at a project root.
	ManifestFile = "manifest.json"
	// AssetsDir is the subfolder holding imported textures.
	AssetsDir = "assets"
	// DefaultRackSize is the rack size of a freshly created project.
	DefaultRackSize = 42
	// TexturePrefix prefixes every physical texture filename.
	TexturePrefix = "texture_"
)

// TextureExtensions lists the image types accepted as textures.
var TextureExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "svg"}
