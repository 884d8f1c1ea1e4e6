package models

import (
	"net/mail"
	"strings"

	"shareit/internal/apperr"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUpdate carries a partial user change. Nil fields are left untouched.
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Apply overwrites only the supplied fields of u.
func (p UserUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// ValidateEmail accepts a bare address such as "ann@example.com".
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperr.Validation("email must not be blank")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return apperr.Validation("invalid email: %s", email)
	}
	return nil
}
