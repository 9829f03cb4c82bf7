package models

// ArticleTag is the join row between an article and a tag. It carries no data
// of its own; the composite key doubles as the uniqueness guarantee for the
// pair.
type ArticleTag struct {
	ArticleID uint `json:"article_id" gorm:"primaryKey"`
	TagID     uint `json:"tag_id" gorm:"primaryKey"`
}
