package repositories

import (
	"errors"
	"strings"

	"github.com/duwuzhou/article-cms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	Resolve(tx *gorm.DB, name string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Resolve returns the tag with the given trimmed name, creating it when
// absent. It must run on the caller's transaction so a failed article write
// does not leak half of its tags. Two callers racing on the same new name are
// settled by the unique index on tags.name: the losing insert is swallowed by
// the ON CONFLICT clause and the winning row is read back.
func (r *tagRepository) Resolve(tx *gorm.DB, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)

	var tag models.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&tag).Error; err != nil {
		return nil, err
	}
	if tag.ID != 0 {
		return &tag, nil
	}

	// The insert lost the race; the row exists now.
	if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}
