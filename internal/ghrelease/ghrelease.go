// Package ghrelease implements publish.ReleaseHost against the GitHub
// Releases API of a single owner/repo.
package ghrelease

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v66/github"

	"github.com/Edustart-Tech/App-Release-Manager/internal/publish"
)

type Host struct {
	client *github.Client
	owner  string
	repo   string
}

func New(token, owner, repo string) *Host {
	return &Host{
		client: github.NewClient(nil).WithAuthToken(token),
		owner:  owner,
		repo:   repo,
	}
}

func (h *Host) GetByTag(ctx context.Context, tag string) (*publish.HostedRelease, error) {
	rel, resp, err := h.client.Repositories.GetReleaseByTag(ctx, h.owner, h.repo, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, publish.ErrReleaseNotFound
		}
		return nil, err
	}
	hosted := &publish.HostedRelease{
		ID:      rel.GetID(),
		TagName: rel.GetTagName(),
	}
	for _, a := range rel.Assets {
		hosted.AssetNames = append(hosted.AssetNames, a.GetName())
	}
	return hosted, nil
}

func (h *Host) CreateRelease(ctx context.Context, tag, body string) (*publish.HostedRelease, error) {
	rel, _, err := h.client.Repositories.CreateRelease(ctx, h.owner, h.repo, &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(tag),
		Body:    github.String(body),
	})
	if err != nil {
		return nil, err
	}
	return &publish.HostedRelease{ID: rel.GetID(), TagName: rel.GetTagName()}, nil
}

// UploadAsset streams the artifact bytes into the release entry. The
// go-github convenience helper only accepts *os.File, so this goes
// through the upload endpoint directly.
func (h *Host) UploadAsset(ctx context.Context, releaseID int64, fileName string, data []byte) (string, error) {
	u := fmt.Sprintf("repos/%s/%s/releases/%d/assets?name=%s",
		h.owner, h.repo, releaseID, url.QueryEscape(fileName))
	req, err := h.client.NewUploadRequest(u, bytes.NewReader(data), int64(len(data)), "application/octet-stream")
	if err != nil {
		return "", err
	}
	asset := new(github.ReleaseAsset)
	if _, err := h.client.Do(ctx, req, asset); err != nil {
		return "", err
	}
	return asset.GetBrowserDownloadURL(), nil
}
