// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads the email and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, EntrezEmail, "  researcher@example.org  \n")
				return dir
			},
			want: Secrets{EntrezEmail: "researcher@example.org"},
		},
		{
			name: "ignores files that are not known keys",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, EntrezEmail, "a@example.org")
				writeFile(t, dir, "contact-name", "Jane Doe")
				writeFile(t, dir, ".hidden-email", "hidden@example.org")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{EntrezEmail: "a@example.org"},
		},
		{
			name: "skips a blank key file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, EntrezEmail, "   \n\t  ")
				return dir
			},
			want: Secrets{},
		},
		{
			name: "returns empty for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "returns empty for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: Secrets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain-file", "x")

	_, err := Load(filepath.Join(dir, "plain-file"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLoadKeyIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, EntrezEmail), 0o755))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading secret "+EntrezEmail)
}

func TestSecretsOr(t *testing.T) {
	s := Secrets{EntrezEmail: "secret@example.org"}
	assert.Equal(t, "flag@example.org", s.Or(EntrezEmail, "flag@example.org"))
	assert.Equal(t, "secret@example.org", s.Or(EntrezEmail, ""))
	assert.Equal(t, "", Secrets{}.Or(EntrezEmail, ""))

	var unset Secrets
	assert.Equal(t, "", unset.Or(EntrezEmail, ""))
}

func TestSecretsNames(t *testing.T) {
	assert.Equal(t, []string{EntrezEmail}, Secrets{EntrezEmail: "a@example.org"}.Names())
	assert.Empty(t, Secrets{}.Names())
}

func writeFile(t *testing.T, dir, name string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
