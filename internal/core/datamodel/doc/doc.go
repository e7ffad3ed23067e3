package doc

import "time"

type Doc struct {
	ID        string    `gorm:"primaryKey"`
	ProjectID string    `gorm:"column:project_id;not null;index"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content"`
	URL       *string   `gorm:"column:url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Doc) TableName() string {
	return "docs"
}
