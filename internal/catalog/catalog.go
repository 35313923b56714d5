// Package catalog answers "what is the latest release for a channel"
// over the stored release records. Version comparison happens here
// rather than in SQL because semver precedence (pre-release ordering
// in particular) is not expressible as a plain column comparison.
package catalog

import (
	"errors"

	"github.com/Masterminds/semver/v3"
	"gorm.io/gorm"

	"github.com/Edustart-Tech/App-Release-Manager/internal/models"
)

// ErrInvalidVersion is returned when a caller-supplied version string
// does not parse as a semantic version.
var ErrInvalidVersion = errors.New("invalid semantic version")

type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ResolveLatest returns the release with the highest semver in the
// (appName, target, arch) channel, or nil when the channel has no
// release with a parseable version. Stored rows whose version fails to
// parse are skipped, never surfaced as errors, so one bad historical
// row cannot break a channel. When two rows carry the same maximal
// version the highest id wins.
func (c *Catalog) ResolveLatest(appName, target, arch string) (*models.Release, error) {
	releases, err := c.channelReleases(appName, target, arch)
	if err != nil {
		return nil, err
	}
	return pickLatest(releases, nil), nil
}

// ResolveUpdate returns the best release strictly newer than
// currentVersion, or nil when the caller is already up to date.
// A malformed currentVersion is a caller error (ErrInvalidVersion);
// it is rejected before any stored row is considered.
func (c *Catalog) ResolveUpdate(appName, target, arch, currentVersion string) (*models.Release, error) {
	current, err := semver.StrictNewVersion(currentVersion)
	if err != nil {
		return nil, ErrInvalidVersion
	}
	releases, err := c.channelReleases(appName, target, arch)
	if err != nil {
		return nil, err
	}
	return pickLatest(releases, current), nil
}

// ListAll returns every stored release across all channels, newest
// publication first. pub_date is RFC 3339 so the string ordering the
// store applies is chronological.
func (c *Catalog) ListAll() ([]models.Release, error) {
	var releases []models.Release
	if err := c.db.Order("pub_date DESC").Find(&releases).Error; err != nil {
		return nil, err
	}
	return releases, nil
}

func (c *Catalog) channelReleases(appName, target, arch string) ([]models.Release, error) {
	var releases []models.Release
	err := c.db.
		Where("app_name = ? AND target = ? AND arch = ?", appName, target, arch).
		Find(&releases).Error
	if err != nil {
		return nil, err
	}
	return releases, nil
}

// pickLatest selects the maximal parseable version, optionally bounded
// below by floor (strictly greater than). Ties on version fall to the
// row with the highest id.
func pickLatest(releases []models.Release, floor *semver.Version) *models.Release {
	var best *models.Release
	var bestVer *semver.Version
	for i := range releases {
		r := &releases[i]
		v, err := semver.StrictNewVersion(r.Version)
		if err != nil {
			continue
		}
		if floor != nil && !v.GreaterThan(floor) {
			continue
		}
		if best == nil || v.GreaterThan(bestVer) || (v.Equal(bestVer) && r.ID > best.ID) {
			best = r
			bestVer = v
		}
	}
	return best
}
