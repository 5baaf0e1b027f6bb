package models

// User is the signed-in account as far as the frontend knows it.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Phone   string `json:"phone,omitempty"`
	Role    Role   `json:"role"`
}

func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// LoginRequest is posted to /api/users/login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResult is what the backend returns on a successful login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
