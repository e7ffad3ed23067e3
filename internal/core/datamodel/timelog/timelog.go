package timelog

import "time"

type TimeLog struct {
	ID        string    `gorm:"primaryKey"`
	ProjectID string    `gorm:"column:project_id;not null;index"`
	TaskID    *string   `gorm:"column:task_id;index"`
	UserID    string    `gorm:"column:user_id;not null;index"`
	Hours     float64   `gorm:"column:hours;not null"`
	Note      string    `gorm:"column:note"`
	LoggedAt  time.Time `gorm:"column:logged_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}
