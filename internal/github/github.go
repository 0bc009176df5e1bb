// Package github uploads a snapshot of the tracker data to a GitHub
// repository through the contents API. The flow mirrors a manual backup:
// verify the token, make sure the repo and branch exist, then push each file.
// Individual file failures are logged and counted but never abort the batch.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Config identifies the upload destination. All three fields are required.
type Config struct {
	Token  string `json:"token"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// File is a single path/content pair to push.
type File struct {
	Path    string
	Content []byte
}

// UploadResult summarizes a finished upload batch.
type UploadResult struct {
	Owner    string   `json:"owner"`
	Repo     string   `json:"repo"`
	Branch   string   `json:"branch"`
	URL      string   `json:"url"`
	Uploaded int      `json:"uploaded"`
	Failed   []string `json:"failed,omitempty"`
}

// Client talks to the GitHub REST API v3. There are no retries anywhere in
// this flow; a flaky network surfaces as a partial result or an error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a client against api.github.com.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.github.com",
		logger:     logger,
	}
}

// UploadSnapshot pushes the fixed project files plus data_backup.json
// containing the given snapshot JSON. Stage failures (token, repo, branch)
// fail fast; per-file failures are collected in the result.
func (c *Client) UploadSnapshot(ctx context.Context, cfg Config, snapshotJSON []byte) (*UploadResult, error) {
	if cfg.Token == "" || cfg.Repo == "" || cfg.Branch == "" {
		return nil, fmt.Errorf("token, repo, and branch are required")
	}

	login, err := c.user(ctx, cfg.Token)
	if err != nil {
		return nil, err
	}
	if err := c.ensureRepo(ctx, cfg); err != nil {
		return nil, err
	}
	if err := c.ensureBranch(ctx, cfg, login); err != nil {
		return nil, err
	}

	files := append(projectFiles(), File{Path: "data_backup.json", Content: snapshotJSON})

	result := &UploadResult{
		Owner:  login,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		URL:    fmt.Sprintf("https://github.com/%s/%s/tree/%s", login, cfg.Repo, cfg.Branch),
	}
	for _, f := range files {
		if err := c.putFile(ctx, cfg, login, f); err != nil {
			c.logger.Error("upload file failed", "path", f.Path, "error", err)
			result.Failed = append(result.Failed, f.Path)
			continue
		}
		result.Uploaded++
	}
	return result, nil
}

// user verifies the token and returns the authenticated login.
func (c *Client) user(ctx context.Context, token string) (string, error) {
	var out struct {
		Login string `json:"login"`
	}
	status, err := c.do(ctx, token, "GET", "/user", nil, &out)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("verify token: status %d (invalid token?)", status)
	}
	if out.Login == "" {
		return "", fmt.Errorf("verify token: empty login in response")
	}
	return out.Login, nil
}

// ensureRepo creates the destination repo. GitHub answers 422 when the repo
// already exists, which is fine.
func (c *Client) ensureRepo(ctx context.Context, cfg Config) error {
	body := map[string]any{
		"name":        cfg.Repo,
		"private":     true,
		"description": "Household chore tracker data",
	}
	status, err := c.do(ctx, cfg.Token, "POST", "/user/repos", body, nil)
	if err != nil {
		return fmt.Errorf("create repo: %w", err)
	}
	if status >= 300 && status != http.StatusUnprocessableEntity {
		return fmt.Errorf("create repo: status %d", status)
	}
	return nil
}

// ensureBranch checks for the branch and, when missing, forks it off the
// repo's default branch.
func (c *Client) ensureBranch(ctx context.Context, cfg Config, login string) error {
	refPath := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", login, cfg.Repo, cfg.Branch)
	status, err := c.do(ctx, cfg.Token, "GET", refPath, nil, nil)
	if err != nil {
		return fmt.Errorf("check branch: %w", err)
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("check branch: status %d", status)
	}

	var repo struct {
		DefaultBranch string `json:"default_branch"`
	}
	status, err = c.do(ctx, cfg.Token, "GET", fmt.Sprintf("/repos/%s/%s", login, cfg.Repo), nil, &repo)
	if err != nil || status != http.StatusOK {
		return fmt.Errorf("access repo for default branch: status %d, err %v", status, err)
	}
	if repo.DefaultBranch == "" {
		repo.DefaultBranch = "main"
	}

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	defPath := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", login, cfg.Repo, repo.DefaultBranch)
	status, err = c.do(ctx, cfg.Token, "GET", defPath, nil, &ref)
	if err != nil || status != http.StatusOK {
		return fmt.Errorf("resolve default branch %q: status %d, err %v", repo.DefaultBranch, status, err)
	}

	body := map[string]any{
		"ref": "refs/heads/" + cfg.Branch,
		"sha": ref.Object.SHA,
	}
	status, err = c.do(ctx, cfg.Token, "POST", fmt.Sprintf("/repos/%s/%s/git/refs", login, cfg.Repo), body, nil)
	if err != nil || status >= 300 {
		return fmt.Errorf("create branch %q: status %d, err %v", cfg.Branch, status, err)
	}
	return nil
}

// putFile creates or updates one file on the branch. An existing file must be
// updated with its current blob sha, so we look that up first.
func (c *Client) putFile(ctx context.Context, cfg Config, login string, f File) error {
	contentsPath := fmt.Sprintf("/repos/%s/%s/contents/%s", login, cfg.Repo, f.Path)

	var existing struct {
		SHA string `json:"sha"`
	}
	status, err := c.do(ctx, cfg.Token, "GET", contentsPath+"?ref="+cfg.Branch, nil, &existing)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", f.Path, err)
	}

	body := map[string]any{
		"message": fmt.Sprintf("Update %s", f.Path),
		"content": base64.StdEncoding.EncodeToString(f.Content),
		"branch":  cfg.Branch,
	}
	if status == http.StatusOK && existing.SHA != "" {
		body["sha"] = existing.SHA
	}

	status, err = c.do(ctx, cfg.Token, "PUT", contentsPath, body, nil)
	if err != nil {
		return fmt.Errorf("put %s: %w", f.Path, err)
	}
	if status >= 300 {
		return fmt.Errorf("put %s: status %d", f.Path, status)
	}
	return nil
}

// do performs one API request. A nil out skips body decoding; decode errors
// on a non-2xx status are ignored so callers can branch on the status alone.
func (c *Client) do(ctx context.Context, token, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
