package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Edustart-Tech/App-Release-Manager/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so the in-memory database survives the pool
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Release{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, releases ...models.Release) {
	t.Helper()
	for i := range releases {
		require.NoError(t, db.Create(&releases[i]).Error)
	}
}

func rel(app, target, arch, version, pubDate string) models.Release {
	return models.Release{
		AppName: app, Target: target, Arch: arch, Version: version,
		URL: "https://example.com/" + app + "-" + version, Signature: "sig",
		PubDate: pubDate, Notes: "notes " + version,
	}
}

func TestResolveLatest_PicksHighestVersion(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "1.2.3", "2024-03-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "1.1.0", "2024-02-01T00:00:00Z"),
	)

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1.2.3", got.Version)
}

func TestResolveLatest_EmptyChannel(t *testing.T) {
	db := newTestDB(t)

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveLatest_ChannelKeysAreExactMatch(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "2.0.0", "2024-01-01T00:00:00Z"),
		rel("classprime", "darwin", "x86_64", "3.0.0", "2024-01-01T00:00:00Z"),
		rel("classfi", "darwin", "aarch64", "4.0.0", "2024-01-01T00:00:00Z"),
		rel("Classprime", "darwin", "aarch64", "5.0.0", "2024-01-01T00:00:00Z"),
	)

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2.0.0", got.Version)
}

func TestResolveLatest_SkipsUnparseableVersions(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "not-a-version", "2024-02-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "v2", "2024-03-01T00:00:00Z"),
	)

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1.0.0", got.Version)
}

func TestResolveLatest_OnlyUnparseableVersions(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, rel("classprime", "darwin", "aarch64", "garbage", "2024-01-01T00:00:00Z"))

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveLatest_PrereleaseRanksBelowRelease(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "1.2.0-beta", "2024-01-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "1.2.0", "2024-02-01T00:00:00Z"),
	)

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1.2.0", got.Version)
}

func TestResolveLatest_EqualVersionsHighestIDWins(t *testing.T) {
	db := newTestDB(t)
	first := rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z")
	second := rel("classprime", "darwin", "aarch64", "1.0.0", "2024-02-01T00:00:00Z")
	second.URL = "https://example.com/replacement"
	seed(t, db, first, second)

	got, err := New(db).ResolveLatest("classprime", "darwin", "aarch64")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://example.com/replacement", got.URL)
}

func TestResolveUpdate_ReturnsStrictlyNewerOnly(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "1.0.1", "2024-02-01T00:00:00Z"),
	)
	cat := New(db)

	got, err := cat.ResolveUpdate("classprime", "darwin", "aarch64", "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1.0.1", got.Version)

	// already on the newest version
	got, err = cat.ResolveUpdate("classprime", "darwin", "aarch64", "1.0.1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// ahead of everything published
	got, err = cat.ResolveUpdate("classprime", "darwin", "aarch64", "9.9.9")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveUpdate_HigherPrereleaseOutranksLowerRelease(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "1.0.1", "2024-02-01T00:00:00Z"),
		rel("classprime", "darwin", "aarch64", "1.2.0-beta", "2024-03-01T00:00:00Z"),
	)

	got, err := New(db).ResolveUpdate("classprime", "darwin", "aarch64", "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1.2.0-beta", got.Version)
}

func TestResolveUpdate_InvalidCurrentVersion(t *testing.T) {
	db := newTestDB(t)
	seed(t, db, rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z"))

	got, err := New(db).ResolveUpdate("classprime", "darwin", "aarch64", "not-a-version")
	assert.ErrorIs(t, err, ErrInvalidVersion)
	assert.Nil(t, got)
}

func TestListAll_NewestPublicationFirst(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		rel("classprime", "darwin", "aarch64", "1.0.0", "2024-01-01T00:00:00Z"),
		rel("classfi", "windows", "x86_64", "2.0.0", "2024-03-01T00:00:00Z"),
		rel("classprime", "darwin", "x86_64", "1.0.1", "2024-02-01T00:00:00Z"),
	)

	got, err := New(db).ListAll()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2.0.0", got[0].Version)
	assert.Equal(t, "1.0.1", got[1].Version)
	assert.Equal(t, "1.0.0", got[2].Version)
}
