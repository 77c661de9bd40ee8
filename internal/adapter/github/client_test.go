package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "plain", url: "https://github.com/gofiber/fiber", owner: "gofiber", repo: "fiber"},
		{name: "trailing slash", url: "https://github.com/gofiber/fiber/", owner: "gofiber", repo: "fiber"},
		{name: "dots and dashes", url: "https://github.com/my-org/repo.name", owner: "my-org", repo: "repo.name"},
		{name: "http scheme", url: "http://github.com/gofiber/fiber", wantErr: true},
		{name: "missing repo", url: "https://github.com/gofiber", wantErr: true},
		{name: "extra path", url: "https://github.com/gofiber/fiber/tree/main", wantErr: true},
		{name: "not github", url: "https://gitlab.com/gofiber/fiber", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid GitHub repository URL")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestClient_DownloadZipball(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/zipball", r.URL.Path)
		w.Write([]byte("zip-bytes"))
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	destDir := t.TempDir()
	path, err := client.DownloadZipball(context.Background(), "acme", "widgets", destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "widgets.zip"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "zip-bytes", string(data))
}

func TestClient_DownloadZipballNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	client.baseURL = server.URL

	_, err := client.DownloadZipball(context.Background(), "acme", "missing", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
