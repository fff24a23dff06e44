package model

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`              // 사용자 ID
	Name         string    `gorm:"not null" json:"name"`              // 이름
	Email        string    `gorm:"uniqueIndex;not null" json:"email"` // 이메일
	PasswordHash string    `gorm:"not null" json:"-"`                 // 비밀번호 해시
	Roles        []Role    `gorm:"-" json:"roles"`                    // 권한 목록 (user_roles)
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsRole reports whether the user holds kind, optionally scoped to a franchise.
func (u *User) IsRole(kind RoleKind, scope ...uint) bool {
	return HasRole(u, kind, scope...)
}

// NewUser is the input of user registration.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Roles    []RoleAssignment
}

// UserRole persists one Role. ObjectID is the franchise id of a franchisee role.
type UserRole struct {
	ID       uint     `gorm:"primarykey"`
	UserID   uint     `gorm:"not null;index"`
	Role     RoleKind `gorm:"type:varchar(20);not null;index"`
	ObjectID *uint    `gorm:"index"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func (r UserRole) ToRole() Role {
	role := Role{Kind: r.Role}
	if r.Role == RoleFranchisee && r.ObjectID != nil {
		role.FranchiseID = *r.ObjectID
	}
	return role
}

// AuthSession marks a signed-in token as live. Token holds the token's signature segment.
type AuthSession struct {
	Token     string    `gorm:"primaryKey;size:512"`
	UserID    uint      `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"index"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}
