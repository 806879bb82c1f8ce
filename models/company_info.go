package models

import (
	"time"
)

type Holiday struct {
	HolidayID int        `gorm:"primaryKey;column:holiday_id" json:"holiday_id"`
	Title     string     `gorm:"column:title" json:"title"`
	Date      string     `gorm:"column:date" json:"date"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// CompanyInfo is a singleton settings row. WeekendDays holds a JSON array of
// lowercase weekday names treated as non-working, e.g. ["saturday","sunday"].
type CompanyInfo struct {
	CompanyInfoID int        `gorm:"primaryKey;column:company_info_id" json:"company_info_id"`
	CompanyName   string     `gorm:"column:company_name" json:"company_name"`
	Address       string     `gorm:"column:address" json:"address"`
	WeekendDays   string     `gorm:"column:weekend_days" json:"weekend_days"`
	ImageHost     string     `gorm:"column:image_host" json:"image_host"`
	CreatedAt     *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (Holiday) TableName() string {
	return "holidays"
}

func (CompanyInfo) TableName() string {
	return "company_info"
}
