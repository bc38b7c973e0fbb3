package models

// Role values for console users.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User is a console account. The password hash is write-only and never
// serialized to a client.
type User struct {
	UserID       int    `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username     string `gorm:"column:username;type:varchar(100);not null;uniqueIndex" json:"username"`
	FullName     string `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Role         string `gorm:"column:role;type:varchar(20);not null;default:'User'" json:"role"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "wkl_users"
}

// IsAdmin reports whether the account has the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRequest is the create/update payload for user administration.
// Password is optional on update; when absent the stored hash is kept.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResetPasswordRequest changes the calling user's own password.
type ResetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
