package models

// Release is a single published build for one (app_name, target, arch)
// channel. Rows are immutable: the service inserts them on upload and
// never updates or deletes them.
type Release struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	AppName   string `gorm:"size:128;index:idx_channel;not null" json:"app_name"`
	Target    string `gorm:"size:64;index:idx_channel;not null" json:"target"`
	Arch      string `gorm:"size:64;index:idx_channel;not null" json:"arch"`
	Version   string `gorm:"size:64;not null" json:"version"`
	URL       string `gorm:"size:512;not null" json:"url"`
	Signature string `gorm:"type:text;not null" json:"signature"`
	// RFC 3339 string; lexicographic order doubles as chronological
	// order, which the /releases listing relies on.
	PubDate string `gorm:"size:64;not null" json:"pub_date"`
	Notes   string `gorm:"type:text;not null" json:"notes"`
}

func (Release) TableName() string { return "releases" }

// UpdateInfo is the client-facing shape for update and latest-version
// queries. Channel coordinates and the row id are deliberately left
// out; clients already know which channel they asked about.
type UpdateInfo struct {
	Version   string `json:"version"`
	URL       string `json:"url"`
	Signature string `json:"signature"`
	PubDate   string `json:"pub_date"`
	Notes     string `json:"notes"`
}

// UpdateInfoFrom trims a stored release down to the client shape.
func UpdateInfoFrom(r *Release) *UpdateInfo {
	return &UpdateInfo{
		Version:   r.Version,
		URL:       r.URL,
		Signature: r.Signature,
		PubDate:   r.PubDate,
		Notes:     r.Notes,
	}
}

// Known apps and targets, for documentation and tooling. Channel keys
// are stored and matched as free-form strings; nothing validates
// against these lists.
var (
	SupportedApps    = []string{"classprime", "classfi"}
	SupportedTargets = []string{"darwin", "windows", "linux"}
)
