package models

import (
	"time"
)

// ClientApplication is one background-verification case. CreatedAt anchors all
// turn-around-time calculations for the case.
type ClientApplication struct {
	ID            int    `gorm:"primaryKey;column:id" json:"id"`
	ApplicationID string `gorm:"column:application_id" json:"application_id"`
	CustomerID    int    `gorm:"column:customer_id" json:"customer_id"`
	BranchID      int    `gorm:"column:branch_id" json:"branch_id"`
	Name          string `gorm:"column:name" json:"name"`
	Email         string `gorm:"column:email" json:"email"`
	EmployeeID    string `gorm:"column:employee_id" json:"employee_id"`
	// Services is a comma-separated list of requested service ids.
	Services           string     `gorm:"column:services" json:"services"`
	Status             string     `gorm:"column:status" json:"status"`
	IsDataQC           int        `gorm:"column:is_data_qc" json:"is_data_qc"`
	IsReportCompleted  int        `gorm:"column:is_report_completed" json:"is_report_completed"`
	ReportCompletedAt  *time.Time `gorm:"column:report_completed_at" json:"report_completed_at,omitempty"`
	IsReportDownloaded int        `gorm:"column:is_report_downloaded" json:"is_report_downloaded"`
	IsHighlight        int        `gorm:"column:is_highlight" json:"is_highlight"`
	IsDeleted          int        `gorm:"column:is_deleted" json:"is_deleted"`
	DeletedAt          *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt          *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          *time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Branch   Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

// TableName override
func (ClientApplication) TableName() string {
	return "client_applications"
}
