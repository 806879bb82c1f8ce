package models

import (
	"time"
)

type Customer struct {
	CustomerID     int        `gorm:"primaryKey;column:customer_id" json:"customer_id"`
	ClientUniqueID string     `gorm:"column:client_unique_id" json:"client_unique_id"`
	Name           string     `gorm:"column:name" json:"name"`
	// Emails is a JSON array of notification recipients for the customer.
	Emails            string     `gorm:"column:emails" json:"emails"`
	ClientSpoc        string     `gorm:"column:client_spoc" json:"client_spoc"`
	EscalationManager string     `gorm:"column:escalation_manager" json:"escalation_manager"`
	DirectorEmail     string     `gorm:"column:director_email" json:"director_email"`
	// TatDays is stored as free text; non-numeric values degrade to 0 days.
	TatDays   string     `gorm:"column:tat_days" json:"tat_days"`
	Services  string     `gorm:"column:services" json:"services"`
	Status    string     `gorm:"column:status" json:"status"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

type Branch struct {
	BranchID    int        `gorm:"primaryKey;column:branch_id" json:"branch_id"`
	CustomerID  int        `gorm:"column:customer_id" json:"customer_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Email       string     `gorm:"column:email" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	IsHeadBranch bool      `gorm:"column:is_head_branch" json:"is_head_branch"`
	LoginToken  *string    `gorm:"column:login_token" json:"-"`
	TokenExpiry *time.Time `gorm:"column:token_expiry" json:"-"`
	Status      string     `gorm:"column:status" json:"status"`
	DeletedAt   *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName overrides
func (Customer) TableName() string {
	return "customers"
}

func (Branch) TableName() string {
	return "branches"
}
