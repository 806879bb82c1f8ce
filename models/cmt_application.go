package models

import (
	"time"
)

// CmtApplication is the client-master-tracker row for a case: the flattened
// top-level verification fields. The physical table grows columns at runtime
// (see services.DynamicTableService); this struct maps only the columns the
// application reads back. Writes always go through the dynamic upsert.
type CmtApplication struct {
	ID                      int     `gorm:"primaryKey;column:id" json:"id"`
	ClientApplicationID     int     `gorm:"column:client_application_id" json:"client_application_id"`
	BranchID                int     `gorm:"column:branch_id" json:"branch_id"`
	CustomerID              int     `gorm:"column:customer_id" json:"customer_id"`
	OverallStatus           *string `gorm:"column:overall_status" json:"overall_status,omitempty"`
	FinalVerificationStatus *string `gorm:"column:final_verification_status" json:"final_verification_status,omitempty"`
	IsVerify                *string `gorm:"column:is_verify" json:"is_verify,omitempty"`
	ReportDate              *string `gorm:"column:report_date" json:"report_date,omitempty"`
	ReportType              *string `gorm:"column:report_type" json:"report_type,omitempty"`
	QcDoneBy                *string `gorm:"column:qc_done_by" json:"qc_done_by,omitempty"`
	ReportGenerateBy        *string `gorm:"column:report_generate_by" json:"report_generate_by,omitempty"`
	DeadlineDate            *string `gorm:"column:deadline_date" json:"deadline_date,omitempty"`
	InitiationDate          *string `gorm:"column:initiation_date" json:"initiation_date,omitempty"`
	Dob                     *string `gorm:"column:dob" json:"dob,omitempty"`
	Gender                  *string `gorm:"column:gender" json:"gender,omitempty"`
	MaritalStatus           *string `gorm:"column:marital_status" json:"marital_status,omitempty"`
	FirstInsufficiencyMarks *string `gorm:"column:first_insufficiency_marks" json:"first_insufficiency_marks,omitempty"`
	FirstInsuffDate         *string `gorm:"column:first_insuff_date" json:"first_insuff_date,omitempty"`
	FirstInsuffReopenedDate *string `gorm:"column:first_insuff_reopened_date" json:"first_insuff_reopened_date,omitempty"`
	SecondInsufficiencyMarks *string `gorm:"column:second_insufficiency_marks" json:"second_insufficiency_marks,omitempty"`
	SecondInsuffDate         *string `gorm:"column:second_insuff_date" json:"second_insuff_date,omitempty"`
	SecondInsuffReopenedDate *string `gorm:"column:second_insuff_reopened_date" json:"second_insuff_reopened_date,omitempty"`
	ThirdInsufficiencyMarks  *string `gorm:"column:third_insufficiency_marks" json:"third_insufficiency_marks,omitempty"`
	ThirdInsuffDate          *string `gorm:"column:third_insuff_date" json:"third_insuff_date,omitempty"`
	ThirdInsuffReopenedDate  *string `gorm:"column:third_insuff_reopened_date" json:"third_insuff_reopened_date,omitempty"`
	CreatedAt                *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName override
func (CmtApplication) TableName() string {
	return "cmt_applications"
}
