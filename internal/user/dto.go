package user

import (
	"strings"

	"github.com/frahmantamala/project-tracker/internal"
)

type CreateUserDTO struct {
	Email       string  `json:"email"`
	Name        *string `json:"name,omitempty"`
	Password    string  `json:"password,omitempty"`
	DefaultRole string  `json:"defaultRole,omitempty"`
}

type UpdateUserDTO struct {
	Email       *string `json:"email,omitempty"`
	Name        *string `json:"name,omitempty"`
	DefaultRole *string `json:"defaultRole,omitempty"`
}

func (d CreateUserDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("email is invalid", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	if d.Email == nil && d.Name == nil && d.DefaultRole == nil {
		return internal.NewValidationError("no fields to update", internal.ErrCodeValidationFailed)
	}
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return internal.NewValidationError("email is invalid", internal.ErrCodeValidationFailed)
	}
	return nil
}
