package models

import (
	"time"
)

// EmailTemplate is looked up by (module, action), e.g.
// ("client_master_tracker", "final_report"). Title and Template contain
// {{placeholder}} markers substituted at send time.
type EmailTemplate struct {
	EmailTemplateID int        `gorm:"primaryKey;column:email_template_id" json:"email_template_id"`
	Module          string     `gorm:"column:module" json:"module"`
	Action          string     `gorm:"column:action" json:"action"`
	Title           string     `gorm:"column:title" json:"title"`
	Template        string     `gorm:"column:template" json:"template"`
	Status          string     `gorm:"column:status" json:"status"`
	CreatedAt       *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// EmailCredential stores the SMTP account used for a module's mails.
type EmailCredential struct {
	EmailCredentialID int        `gorm:"primaryKey;column:email_credential_id" json:"email_credential_id"`
	Module            string     `gorm:"column:module" json:"module"`
	Host              string     `gorm:"column:host" json:"host"`
	Port              int        `gorm:"column:port" json:"port"`
	Username          string     `gorm:"column:username" json:"username"`
	Password          string     `gorm:"column:password" json:"-"`
	FromAddress       string     `gorm:"column:from_address" json:"from_address"`
	Status            string     `gorm:"column:status" json:"status"`
	CreatedAt         *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (EmailTemplate) TableName() string {
	return "email_templates"
}

func (EmailCredential) TableName() string {
	return "email_credentials"
}
