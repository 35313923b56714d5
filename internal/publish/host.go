package publish

import (
	"context"
	"errors"
)

// ErrReleaseNotFound is returned by GetByTag when the host has no
// release entry for the tag. The pipeline treats it as "create one",
// not as a failure.
var ErrReleaseNotFound = errors.New("release not found on host")

// HostedRelease is the pipeline's view of a release entry on the
// artifact host.
type HostedRelease struct {
	ID         int64
	TagName    string
	AssetNames []string
}

func (r *HostedRelease) HasAsset(name string) bool {
	for _, n := range r.AssetNames {
		if n == name {
			return true
		}
	}
	return false
}

// ReleaseHost is the capability the pipeline needs from the external
// artifact host. The production implementation talks to GitHub
// Releases; tests inject a double.
type ReleaseHost interface {
	// GetByTag looks up a release entry; ErrReleaseNotFound when absent.
	GetByTag(ctx context.Context, tag string) (*HostedRelease, error)
	// CreateRelease creates a new entry named after the tag with the
	// given body text.
	CreateRelease(ctx context.Context, tag, body string) (*HostedRelease, error)
	// UploadAsset stores data under fileName in the release entry and
	// returns the public download URL.
	UploadAsset(ctx context.Context, releaseID int64, fileName string, data []byte) (string, error)
}
