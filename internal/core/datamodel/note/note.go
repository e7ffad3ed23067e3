package note

import "time"

type Note struct {
	ID        string    `gorm:"primaryKey"`
	ProjectID string    `gorm:"column:project_id;not null;index"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Note) TableName() string {
	return "notes"
}
