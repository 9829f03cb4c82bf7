package models

import "time"

type Article struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"not null"`
	Summary   string    `json:"summary" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"type:date;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Tags      []Tag     `json:"tags" gorm:"many2many:article_tags;"`
	CreatedAt time.Time `json:"created_at"`
}
