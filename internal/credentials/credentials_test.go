// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/similigh/taskclone/internal/core/tasks"
)

func envFrom(m map[string]string) LookupEnvFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeToken(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".github-token")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write token file: %v", err)
	}
	return path
}

func TestResolve(t *testing.T) {
	fileWithToken := writeToken(t, "file-token\nsecond-line\n")
	emptyFile := writeToken(t, "")
	missingFile := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name      string
		env       map[string]string
		tokenFile string
		want      string
		wantErr   bool
	}{
		{
			name:      "env wins over file",
			env:       map[string]string{"GITHUB_TOKEN": "env-token"},
			tokenFile: fileWithToken,
			want:      "env-token",
		},
		{
			name:      "empty env falls back to file",
			env:       map[string]string{"GITHUB_TOKEN": "  "},
			tokenFile: fileWithToken,
			want:      "file-token",
		},
		{
			name:      "file first line only",
			env:       map[string]string{},
			tokenFile: fileWithToken,
			want:      "file-token",
		},
		{
			name:      "missing file",
			env:       map[string]string{},
			tokenFile: missingFile,
			wantErr:   true,
		},
		{
			name:      "empty file",
			env:       map[string]string{},
			tokenFile: emptyFile,
			wantErr:   true,
		},
		{
			name:    "no file configured",
			env:     map[string]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(envFrom(tt.env), "GITHUB_TOKEN", tt.tokenFile)
			if tt.wantErr {
				if !errors.Is(err, tasks.ErrCredentialMissing) {
					t.Errorf("Expected ErrCredentialMissing, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected token %q, got %q", tt.want, got)
			}
		})
	}
}
