package models

import (
	"time"
)

type Admin struct {
	AdminID     int        `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Mobile      string     `gorm:"column:mobile" json:"mobile"`
	Password    string     `gorm:"column:password" json:"-"`
	Role        string     `gorm:"column:role" json:"role"`
	Status      string     `gorm:"column:status" json:"status"`
	LoginToken  *string    `gorm:"column:login_token" json:"-"`
	TokenExpiry *time.Time `gorm:"column:token_expiry" json:"-"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// Permission holds the per-admin feature flags, stored one row per admin as a
// JSON object of {"service_name": {"view":true,...}}.
type Permission struct {
	PermissionID int        `gorm:"primaryKey;column:permission_id" json:"permission_id"`
	Role         string     `gorm:"column:role" json:"role"`
	Json         string     `gorm:"column:json" json:"json"`
	CreatedAt    *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (Admin) TableName() string {
	return "admins"
}

func (Permission) TableName() string {
	return "permissions"
}
