package repositories

import (
	"errors"
	"fmt"

	"github.com/duwuzhou/article-cms/models"

	"gorm.io/gorm"
)

// errNotFound aborts a unit of work whose target row turned out not to exist.
// It never escapes this package; callers see a false "found" flag instead.
var errNotFound = errors.New("article not found")

type ArticleRepository interface {
	Create(article *models.Article, tagNames []string) error
	GetByID(id uint) (*models.Article, error)
	List(params models.ArticleListParams) ([]models.Article, int64, error)
	Update(article *models.Article, tagNames []string) (bool, error)
	Delete(id uint) (bool, error)
}

type articleRepository struct {
	db      *gorm.DB
	tagRepo TagRepository
}

func NewArticleRepository(db *gorm.DB, tagRepo TagRepository) ArticleRepository {
	return &articleRepository{db: db, tagRepo: tagRepo}
}

// Create inserts the article row and its tag associations as one unit of
// work. Callers pass tag names already trimmed and de-duplicated.
func (r *articleRepository) Create(article *models.Article, tagNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(article).Error; err != nil {
			return err
		}
		return r.replaceTags(tx, article, tagNames)
	})
	return classify(err)
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Tags").First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &article, nil
}

// List returns one page of articles plus the total row count. The count runs
// before LIMIT/OFFSET so pagination metadata stays accurate on every page.
// params must already be normalized: SortBy a real column name, Order ASC or
// DESC.
func (r *articleRepository) List(params models.ArticleListParams) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Preload("Tags")

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.
		Order(fmt.Sprintf("%s %s", params.SortBy, params.Order)).
		Offset(offset).
		Limit(params.PageSize).
		Find(&articles).Error
	if err != nil {
		return nil, 0, classify(err)
	}

	return articles, total, nil
}

// Update rewrites the scalar columns and replaces the whole tag set in one
// unit of work. Returns false with a nil error when no row matches the id.
// created_at is never touched.
func (r *articleRepository) Update(article *models.Article, tagNames []string) (bool, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Article{}).Where("id = ?", article.ID).Updates(map[string]interface{}{
			"title":   article.Title,
			"summary": article.Summary,
			"date":    article.Date,
			"content": article.Content,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNotFound
		}
		return r.replaceTags(tx, article, tagNames)
	})
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, classify(err)
	}
	return true, nil
}

// Delete removes the association rows and then the article row, atomically.
// Tag rows are left behind on purpose; see the tag model.
func (r *articleRepository) Delete(id uint) (bool, error) {
	deleted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Article{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, classify(err)
	}
	return deleted, nil
}

// replaceTags wipes the article's association rows and rebuilds them from
// tagNames, resolving each name through the tag repository on the same
// transaction. Shared by Create and Update so both apply identical tag
// semantics.
func (r *articleRepository) replaceTags(tx *gorm.DB, article *models.Article, tagNames []string) error {
	if err := tx.Where("article_id = ?", article.ID).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}

	article.Tags = nil
	for _, name := range tagNames {
		tag, err := r.tagRepo.Resolve(tx, name)
		if err != nil {
			return err
		}
		assoc := models.ArticleTag{ArticleID: article.ID, TagID: tag.ID}
		if err := tx.Create(&assoc).Error; err != nil {
			return err
		}
		article.Tags = append(article.Tags, *tag)
	}
	return nil
}
