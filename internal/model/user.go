package model

import "github.com/alfredjeanlab/cafedash/internal/tableview"

// Role is the account role used to gate dashboard features.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
)

// IsStaff reports whether the role belongs to cafe personnel.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User is the account profile returned by login and /auth/me.
type User struct {
	ID        ID     `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      Role   `json:"role"`
	TeamID    ID     `json:"team_id,omitempty"`
}

func (u User) Record() tableview.Record { return toRecord(u) }

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token and the signed-in user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the body of POST /auth/register. ConfirmPassword is
// checked locally and never sent.
type RegisterRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// UpdateProfileRequest holds optional profile changes. Nil means "don't change".
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ChangePasswordRequest is the body of PUT /auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"-"`
}
