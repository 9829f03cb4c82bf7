package repositories

import (
	"testing"
	"time"

	"github.com/duwuzhou/article-cms/config"
	"github.com/duwuzhou/article-cms/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.SetupSchema(db))
	require.NoError(t, db.AutoMigrate(&models.Tag{}, &models.Article{}))

	return db
}

func newRepos(t *testing.T) (ArticleRepository, TagRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	tagRepo := NewTagRepository(db)
	return NewArticleRepository(db, tagRepo), tagRepo, db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
