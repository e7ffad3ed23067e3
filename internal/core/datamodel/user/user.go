package user

import "time"

type User struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         *string   `gorm:"column:name"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	DefaultRole  string    `gorm:"column:default_role;default:'NoAccess'"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
