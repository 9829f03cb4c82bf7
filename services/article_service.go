package services

import (
	"sort"
	"strings"
	"time"

	"github.com/duwuzhou/article-cms/models"
	"github.com/duwuzhou/article-cms/repositories"
)

const (
	dateLayout  = "2006-01-02"
	maxPageSize = 100
)

// sortColumns is the allow-list for findAll ordering. Anything outside it
// silently falls back to date so free-form input never reaches the ORDER BY
// clause.
var sortColumns = map[string]string{
	"id":         "id",
	"title":      "title",
	"date":       "date",
	"created_at": "created_at",
}

type ArticleService interface {
	Create(req models.CreateArticleRequest) (*models.ArticleResponse, error)
	GetByID(id uint) (*models.ArticleResponse, error)
	List(params models.ArticleListParams) ([]models.ArticleResponse, int64, error)
	Update(id uint, req models.UpdateArticleRequest) (*models.ArticleResponse, error)
	Delete(id uint) (bool, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository) ArticleService {
	return &articleService{articleRepo: articleRepo}
}

func (s *articleService) Create(req models.CreateArticleRequest) (*models.ArticleResponse, error) {
	date, err := validateFields(req.Title, req.Summary, req.Date)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:   strings.TrimSpace(req.Title),
		Summary: strings.TrimSpace(req.Summary),
		Date:    date,
		Content: req.Content,
	}

	if err := s.articleRepo.Create(article, normalizeTags(req.Tags)); err != nil {
		return nil, err
	}

	// Reload for the generated id, created_at and resolved tags.
	created, err := s.articleRepo.GetByID(article.ID)
	if err != nil {
		return nil, err
	}
	return toResponse(created), nil
}

func (s *articleService) GetByID(id uint) (*models.ArticleResponse, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	return toResponse(article), nil
}

func (s *articleService) List(params models.ArticleListParams) ([]models.ArticleResponse, int64, error) {
	if params.Page < 1 {
		return nil, 0, models.ErrorValidation{Message: "page must be at least 1"}
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return nil, 0, models.ErrorValidation{Message: "pageSize must be between 1 and 100"}
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "date"
	}
	params.SortBy = column

	order := strings.ToUpper(params.Order)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	params.Order = order

	articles, total, err := s.articleRepo.List(params)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]models.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, *toResponse(&articles[i]))
	}
	return responses, total, nil
}

func (s *articleService) Update(id uint, req models.UpdateArticleRequest) (*models.ArticleResponse, error) {
	date, err := validateFields(req.Title, req.Summary, req.Date)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:      id,
		Title:   strings.TrimSpace(req.Title),
		Summary: strings.TrimSpace(req.Summary),
		Date:    date,
		Content: req.Content,
	}

	found, err := s.articleRepo.Update(article, normalizeTags(req.Tags))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	updated, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

func (s *articleService) Delete(id uint) (bool, error) {
	return s.articleRepo.Delete(id)
}

func validateFields(title, summary, date string) (time.Time, error) {
	if strings.TrimSpace(title) == "" {
		return time.Time{}, models.ErrorValidation{Message: "title is required"}
	}
	if strings.TrimSpace(summary) == "" {
		return time.Time{}, models.ErrorValidation{Message: "summary is required"}
	}
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, models.ErrorValidation{Message: "date must be formatted as YYYY-MM-DD"}
	}
	return parsed, nil
}

// normalizeTags trims every name, drops empties and de-duplicates while
// preserving first occurrence. The result is what create and update feed the
// resolver.
func normalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func toResponse(article *models.Article) *models.ArticleResponse {
	names := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		names = append(names, tag.Name)
	}
	sort.Strings(names)

	return &models.ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Summary:   article.Summary,
		Date:      article.Date.Format(dateLayout),
		Content:   article.Content,
		Tags:      names,
		CreatedAt: article.CreatedAt.Format(time.RFC3339),
	}
}
