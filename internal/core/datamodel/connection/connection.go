package connection

import "time"

// Connection may exist without a project; a NULL project_id marks a global
// connection shared across workspaces.
type Connection struct {
	ID        string    `gorm:"primaryKey"`
	ProjectID *string   `gorm:"column:project_id;index"`
	Name      string    `gorm:"column:name;not null"`
	Kind      string    `gorm:"column:kind;not null"`
	Config    string    `gorm:"column:config"`
	Status    string    `gorm:"column:status;default:'inactive'"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Connection) TableName() string {
	return "connections"
}
