package repositories

import (
	"fmt"
	"testing"

	"github.com/duwuzhou/article-cms/models"

	"github.com/stretchr/testify/require"
)

func TestCreatePersistsArticleWithTags(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	article := &models.Article{
		Title:   "T",
		Summary: "S",
		Date:    mustDate(t, "2024-01-01"),
	}
	require.NoError(t, articleRepo.Create(article, []string{"go", "systems"}))
	require.NotZero(t, article.ID)

	loaded, err := articleRepo.GetByID(article.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Tags, 2)
	require.EqualValues(t, 2, countRows(t, db, &models.Tag{}))
	require.EqualValues(t, 2, countRows(t, db, &models.ArticleTag{}))
}

func TestCreateReusesExistingTagRow(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	first := &models.Article{Title: "a", Summary: "s", Date: mustDate(t, "2024-01-01")}
	require.NoError(t, articleRepo.Create(first, []string{"go", "systems"}))

	second := &models.Article{Title: "b", Summary: "s", Date: mustDate(t, "2024-01-02")}
	require.NoError(t, articleRepo.Create(second, []string{"go"}))

	// Exactly one "go" row, shared by both articles.
	var goTags []models.Tag
	require.NoError(t, db.Where("name = ?", "go").Find(&goTags).Error)
	require.Len(t, goTags, 1)

	var assocs []models.ArticleTag
	require.NoError(t, db.Where("tag_id = ?", goTags[0].ID).Find(&assocs).Error)
	require.Len(t, assocs, 2)
}

func TestCreateRollsBackOnAssociationFailure(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	// A duplicated name slips past the resolver and collides on the join
	// table's composite key partway through the association loop.
	article := &models.Article{Title: "T", Summary: "S", Date: mustDate(t, "2024-01-01")}
	err := articleRepo.Create(article, []string{"go", "go"})
	require.Error(t, err)

	// Nothing from the failed unit of work survives, tag row included.
	require.EqualValues(t, 0, countRows(t, db, &models.Article{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Tag{}))
	require.EqualValues(t, 0, countRows(t, db, &models.ArticleTag{}))
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	articleRepo, _, _ := newRepos(t)

	article, err := articleRepo.GetByID(42)
	require.NoError(t, err)
	require.Nil(t, article)
}

func TestUpdateReplacesTagSetWholesale(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	article := &models.Article{Title: "T", Summary: "S", Date: mustDate(t, "2024-01-01")}
	require.NoError(t, articleRepo.Create(article, []string{"go", "systems"}))

	updated := &models.Article{
		ID:      article.ID,
		Title:   "T2",
		Summary: "S2",
		Date:    mustDate(t, "2024-02-01"),
		Content: "body",
	}
	found, err := articleRepo.Update(updated, []string{"rust"})
	require.NoError(t, err)
	require.True(t, found)

	loaded, err := articleRepo.GetByID(article.ID)
	require.NoError(t, err)
	require.Equal(t, "T2", loaded.Title)
	require.Equal(t, "body", loaded.Content)
	require.Len(t, loaded.Tags, 1)
	require.Equal(t, "rust", loaded.Tags[0].Name)

	// Orphaned tags stay in the store.
	require.EqualValues(t, 3, countRows(t, db, &models.Tag{}))
	require.EqualValues(t, 1, countRows(t, db, &models.ArticleTag{}))
}

func TestUpdateWithEmptyTagsClearsAssociations(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	article := &models.Article{Title: "T", Summary: "S", Date: mustDate(t, "2024-01-01")}
	require.NoError(t, articleRepo.Create(article, []string{"go"}))

	updated := &models.Article{ID: article.ID, Title: "T", Summary: "S", Date: article.Date}
	found, err := articleRepo.Update(updated, nil)
	require.NoError(t, err)
	require.True(t, found)

	loaded, err := articleRepo.GetByID(article.ID)
	require.NoError(t, err)
	require.Empty(t, loaded.Tags)
	require.EqualValues(t, 0, countRows(t, db, &models.ArticleTag{}))
}

func TestUpdateMissingArticleReportsNotFound(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	missing := &models.Article{ID: 9999, Title: "T", Summary: "S", Date: mustDate(t, "2024-01-01")}
	found, err := articleRepo.Update(missing, []string{"go"})
	require.NoError(t, err)
	require.False(t, found)

	// The aborted unit of work resolved no tags.
	require.EqualValues(t, 0, countRows(t, db, &models.Tag{}))
}

func TestUpdateDoesNotTouchCreatedAt(t *testing.T) {
	articleRepo, _, _ := newRepos(t)

	article := &models.Article{Title: "T", Summary: "S", Date: mustDate(t, "2024-01-01")}
	require.NoError(t, articleRepo.Create(article, nil))

	before, err := articleRepo.GetByID(article.ID)
	require.NoError(t, err)

	updated := &models.Article{ID: article.ID, Title: "T2", Summary: "S2", Date: article.Date}
	found, err := articleRepo.Update(updated, nil)
	require.NoError(t, err)
	require.True(t, found)

	after, err := articleRepo.GetByID(article.ID)
	require.NoError(t, err)
	require.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestDeleteRemovesArticleAndAssociations(t *testing.T) {
	articleRepo, _, db := newRepos(t)

	article := &models.Article{Title: "T", Summary: "S", Date: mustDate(t, "2024-01-01")}
	require.NoError(t, articleRepo.Create(article, []string{"go", "systems"}))

	deleted, err := articleRepo.Delete(article.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	loaded, err := articleRepo.GetByID(article.ID)
	require.NoError(t, err)
	require.Nil(t, loaded)

	require.EqualValues(t, 0, countRows(t, db, &models.ArticleTag{}))
	// Tags survive their last article.
	require.EqualValues(t, 2, countRows(t, db, &models.Tag{}))
}

func TestDeleteMissingArticleReturnsFalse(t *testing.T) {
	articleRepo, _, _ := newRepos(t)

	deleted, err := articleRepo.Delete(42)
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestListPaginatesWithAccurateTotal(t *testing.T) {
	articleRepo, _, _ := newRepos(t)

	for i := 1; i <= 12; i++ {
		article := &models.Article{
			Title:   fmt.Sprintf("article %02d", i),
			Summary: "s",
			Date:    mustDate(t, fmt.Sprintf("2024-01-%02d", i)),
		}
		require.NoError(t, articleRepo.Create(article, nil))
	}

	articles, total, err := articleRepo.List(models.ArticleListParams{
		Page: 2, PageSize: 5, SortBy: "date", Order: "DESC",
	})
	require.NoError(t, err)
	require.EqualValues(t, 12, total)
	require.Len(t, articles, 5)

	// Page 2 of most-recent-first: the 6th through 10th newest dates.
	require.Equal(t, "2024-01-07", articles[0].Date.Format("2006-01-02"))
	require.Equal(t, "2024-01-03", articles[4].Date.Format("2006-01-02"))
}

func TestListLastPageIsShort(t *testing.T) {
	articleRepo, _, _ := newRepos(t)

	for i := 1; i <= 12; i++ {
		article := &models.Article{
			Title:   fmt.Sprintf("article %02d", i),
			Summary: "s",
			Date:    mustDate(t, fmt.Sprintf("2024-01-%02d", i)),
		}
		require.NoError(t, articleRepo.Create(article, nil))
	}

	articles, total, err := articleRepo.List(models.ArticleListParams{
		Page: 3, PageSize: 5, SortBy: "date", Order: "DESC",
	})
	require.NoError(t, err)
	require.EqualValues(t, 12, total)
	require.Len(t, articles, 2)
}
