package models

type CreateArticleRequest struct {
	Title   string   `json:"title" validate:"required,max=255"`
	Summary string   `json:"summary" validate:"required"`
	Date    string   `json:"date" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type UpdateArticleRequest struct {
	Title   string   `json:"title" validate:"required,max=255"`
	Summary string   `json:"summary" validate:"required"`
	Date    string   `json:"date" validate:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type ArticleListParams struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=10"`
	SortBy   string `form:"sortBy,default=date"`
	Order    string `form:"order,default=DESC"`
}

// ArticleResponse is the wire shape for a single article: the stored row plus
// its tag names, lexically sorted so equal tag sets always render the same.
type ArticleResponse struct {
	ID        uint     `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Date      string   `json:"date"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}
