package models

import "time"

const UserTable = "ace_users"

// Role values understood by the permission table in app/perm.go.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleBorrower = "borrower"
)

type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	DisplayName  string `gorm:"size:255;not null" json:"displayName"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'borrower'" json:"role"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }
