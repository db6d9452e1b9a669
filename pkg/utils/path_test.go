package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Test Rack!", want: "Test_Rack_"},
		{in: "plain-name_01", want: "plain-name_01"},
		{in: "../escape", want: "___escape"},
		{in: "日本", want: "__"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}

func TestMatchesExtensions(t *testing.T) {
	allowed := []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "svg"}

	assert.True(t, MatchesExtensions("/tmp/photo.png", allowed))
	assert.True(t, MatchesExtensions("/tmp/PHOTO.JPEG", allowed))
	assert.True(t, MatchesExtensions("icon.svg", allowed))
	assert.False(t, MatchesExtensions("/tmp/notes.txt", allowed))
	assert.False(t, MatchesExtensions("/tmp/png", allowed))
	assert.True(t, MatchesExtensions("/tmp/anything", nil))
}

func TestExtensionPattern(t *testing.T) {
	assert.Equal(t, "*.png", ExtensionPattern([]string{"PNG"}))
	assert.Equal(t, "*.{png,jpg}", ExtensionPattern([]string{".png", "jpg"}))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "Documents"), ExpandPath("~/Documents"))
	assert.Equal(t, filepath.Clean("/tmp/x"), ExpandPath("/tmp/x/../x"))
}

func TestIsExplicitLocation(t *testing.T) {
	assert.True(t, IsExplicitLocation("/abs/path"))
	assert.True(t, IsExplicitLocation("~/Projects/Rack"))
	assert.True(t, IsExplicitLocation("relative/dir"))
	assert.False(t, IsExplicitLocation("Test_Rack_"))
}
