package services

import (
	"github.com/duwuzhou/article-cms/models"
	"github.com/duwuzhou/article-cms/repositories"
)

// TagService is read-only on purpose: tags come into existence lazily through
// article writes, so a create endpoint would bypass the resolver.
type TagService interface {
	GetTags() ([]models.Tag, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags() ([]models.Tag, error) {
	return s.tagRepo.GetAll()
}
