package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
)

var repoURLPattern = regexp.MustCompile(`^https://github\.com/([\w.-]+)/([\w.-]+)/?$`)

// ParseRepoURL validates a public repository URL of the form
// https://github.com/owner/repo and returns its owner and name.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	m := repoURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", fmt.Errorf("invalid GitHub repository URL %q, must be in format: https://github.com/owner/repo", rawURL)
	}
	return m[1], m[2], nil
}

// Client downloads public repository archives from the GitHub API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a GitHub archive client.
func NewClient() *Client {
	return &Client{
		baseURL:    "https://api.github.com",
		httpClient: &http.Client{},
	}
}

// DownloadZipball fetches the repository's zipball into destDir and returns
// the path of the saved archive.
func (c *Client) DownloadZipball(ctx context.Context, owner, repo, destDir string) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/zipball", c.baseURL, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download repo zipball: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download repo zipball: status %d", resp.StatusCode)
	}

	zipPath := filepath.Join(destDir, repo+".zip")
	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("create archive file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("save archive: %w", err)
	}
	return zipPath, nil
}
