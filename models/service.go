package models

import (
	"encoding/json"
	"time"
)

type Service struct {
	ServiceID   int        `gorm:"primaryKey;column:service_id" json:"service_id"`
	Title       string     `gorm:"column:title" json:"title"`
	ShortCode   string     `gorm:"column:short_code" json:"short_code"`
	Status      string     `gorm:"column:status" json:"status"`
	CreatedAt   *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// ReportForm stores the JSON descriptor driving both the annexure table layout
// and report rendering for one service.
type ReportForm struct {
	ReportFormID int        `gorm:"primaryKey;column:report_form_id" json:"report_form_id"`
	ServiceID    int        `gorm:"column:service_id" json:"service_id"`
	Json         string     `gorm:"column:json" json:"json"`
	CreatedAt    *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// ReportFormDefinition is the parsed shape of ReportForm.Json.
type ReportFormDefinition struct {
	DbTable string          `json:"db_table"`
	Heading string          `json:"heading"`
	Rows    []ReportFormRow `json:"rows"`
}

type ReportFormRow struct {
	Label  string            `json:"label"`
	Inputs []ReportFormInput `json:"inputs"`
}

type ReportFormInput struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Definition parses the stored JSON descriptor.
func (f *ReportForm) Definition() (*ReportFormDefinition, error) {
	var def ReportFormDefinition
	if err := json.Unmarshal([]byte(f.Json), &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// TableName overrides
func (Service) TableName() string {
	return "services"
}

func (ReportForm) TableName() string {
	return "report_forms"
}
