// internal/models/account.go
package models

import "strings"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// DefaultDisplayName is used when a registration carries neither name nor full_name.
const DefaultDisplayName = "Kullanıcı"

type Account struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsTeacher bool   `json:"is_teacher"`
}

// NewAccount keeps IsTeacher in step with role.
func NewAccount(id int, name, email string, role Role) Account {
	return Account{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      role,
		IsTeacher: role == RoleTeacher,
	}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=student teacher"`
}

func (r Registration) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(r.FullName); name != "" {
		return name
	}
	return DefaultDisplayName
}

// AuthPayload is returned by login and registration.
type AuthPayload struct {
	User  Account `json:"user"`
	Token string  `json:"token"`
}
