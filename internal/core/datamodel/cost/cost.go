package cost

import "time"

type Cost struct {
	ID          string    `gorm:"primaryKey"`
	ProjectID   string    `gorm:"column:project_id;not null;index"`
	Description string    `gorm:"column:description;not null"`
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	Currency    string    `gorm:"column:currency;default:'USD'"`
	IncurredAt  time.Time `gorm:"column:incurred_at"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Cost) TableName() string {
	return "costs"
}
