// Package publish accepts a new artifact plus metadata, forwards the
// artifact to the external release host, and records the resulting
// download URL as a local release row.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Edustart-Tech/App-Release-Manager/internal/models"
)

var (
	// ErrEmptyArtifact rejects submissions with no file bytes.
	ErrEmptyArtifact = errors.New("no file uploaded or file is empty")
	// ErrAssetConflict means the exact (tag, file name) pair was
	// already published; re-submitting the same artifact is refused
	// rather than overwritten.
	ErrAssetConflict = errors.New("asset already exists in this release")
)

// UpstreamError wraps a failure from the external release host.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("release host %s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }

// Submission carries everything the /upload form provides.
type Submission struct {
	AppName   string
	Version   string
	Target    string
	Arch      string
	Notes     string
	Signature string
	FileName  string
	FileData  []byte
}

// Tag is the host-side identifier for one app version, e.g.
// "classprime-v1.2.0". All architectures of a version share it.
func (s Submission) Tag() string {
	return fmt.Sprintf("%s-v%s", s.AppName, s.Version)
}

type Publisher struct {
	db   *gorm.DB
	host ReleaseHost
	log  *zap.Logger
	now  func() time.Time
}

func NewPublisher(db *gorm.DB, host ReleaseHost, log *zap.Logger) *Publisher {
	return &Publisher{db: db, host: host, log: log, now: time.Now}
}

// Publish pushes the artifact to the release host and records a local
// release row, returning the public download URL. Host failures are
// surfaced as *UpstreamError with no retry; if the upload succeeds but
// the local insert fails, the artifact stays published upstream with
// no local record.
func (p *Publisher) Publish(ctx context.Context, sub Submission) (string, error) {
	if len(sub.FileData) == 0 {
		return "", ErrEmptyArtifact
	}

	tag := sub.Tag()
	p.log.Info("publishing release",
		zap.String("tag", tag),
		zap.String("target", sub.Target),
		zap.String("arch", sub.Arch),
		zap.String("file", sub.FileName),
		zap.Int("size", len(sub.FileData)))

	hosted, err := p.host.GetByTag(ctx, tag)
	switch {
	case err == nil:
		if hosted.HasAsset(sub.FileName) {
			p.log.Warn("asset conflict", zap.String("tag", tag), zap.String("file", sub.FileName))
			return "", ErrAssetConflict
		}
	case errors.Is(err, ErrReleaseNotFound):
		p.log.Info("creating host release", zap.String("tag", tag))
		hosted, err = p.host.CreateRelease(ctx, tag, sub.Notes)
		if err != nil {
			return "", &UpstreamError{Op: "create", Err: err}
		}
	default:
		return "", &UpstreamError{Op: "lookup", Err: err}
	}

	url, err := p.host.UploadAsset(ctx, hosted.ID, sub.FileName, sub.FileData)
	if err != nil {
		return "", &UpstreamError{Op: "upload", Err: err}
	}

	release := models.Release{
		AppName:   sub.AppName,
		Target:    sub.Target,
		Arch:      sub.Arch,
		Version:   sub.Version,
		URL:       url,
		Signature: sub.Signature,
		PubDate:   p.now().UTC().Format(time.RFC3339),
		Notes:     sub.Notes,
	}
	// Insert-or-ignore; the table declares no unique constraint, so in
	// practice every successful upload lands a new row.
	if err := p.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&release).Error; err != nil {
		return "", err
	}

	p.log.Info("release published", zap.String("tag", tag), zap.String("url", url))
	return url, nil
}
