package user

import (
	"time"

	"github.com/frahmantamala/project-tracker/internal"
	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
)

// User is the management view of an account. Password hashes never leave the
// repository layer.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        *string   `json:"name,omitempty"`
	DefaultRole string    `json:"defaultRole"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrUserNotFound = internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	ErrEmailInUse   = internal.NewConflictError("email already in use", internal.ErrCodeEmailInUse)

	// ErrAdminProtected rejects a non-admin actor modifying an account that
	// holds an Admin assignment somewhere.
	ErrAdminProtected = internal.NewForbiddenError("cannot modify an admin user", internal.ErrCodeAdminProtected)

	// ErrSelfModification rejects update or delete aimed at the actor's own
	// account through the management endpoints.
	ErrSelfModification = internal.NewForbiddenError("cannot modify your own account here", internal.ErrCodeSelfModification)
)

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		DefaultRole: u.DefaultRole,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
