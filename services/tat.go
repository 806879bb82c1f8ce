package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"bgv-management-api/models"
	"bgv-management-api/utils"
)

// Turn-around-time progress classifications.
const (
	TatEarly  = "early"
	TatOnTime = "on_time"
	TatExceed = "exceed"
)

// TatCalendar answers business-day questions against the configured weekend
// days and the holiday list. Verification work happens only on working days,
// so deadlines and lateness are computed against this calendar rather than
// raw elapsed time.
type TatCalendar struct {
	holidays map[string]struct{} // keyed "2006-01-02"
	weekends map[string]struct{} // lowercase weekday names
}

// NewTatCalendar builds a calendar from holiday date strings and lowercase
// weekday names. Unparseable holiday dates are skipped; empty inputs degrade
// to "every day is a working day".
func NewTatCalendar(holidayDates []string, weekendDays []string) *TatCalendar {
	cal := &TatCalendar{
		holidays: make(map[string]struct{}, len(holidayDates)),
		weekends: make(map[string]struct{}, len(weekendDays)),
	}
	for _, raw := range holidayDates {
		if day, ok := utils.ParseCalendarDate(raw); ok {
			cal.holidays[utils.FormatDate(day)] = struct{}{}
		}
	}
	for _, name := range weekendDays {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			cal.weekends[name] = struct{}{}
		}
	}
	return cal
}

// LoadTatCalendar reads the holiday table and the company-info weekend
// configuration.
func LoadTatCalendar(db *gorm.DB) (*TatCalendar, error) {
	var holidays []models.Holiday
	if err := db.Find(&holidays).Error; err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	var info models.CompanyInfo
	weekendDays := []string{}
	err := db.First(&info).Error
	switch {
	case err == nil:
		if strings.TrimSpace(info.WeekendDays) != "" {
			if err := json.Unmarshal([]byte(info.WeekendDays), &weekendDays); err != nil {
				return nil, fmt.Errorf("invalid weekend_days config: %w", err)
			}
		}
	case err == gorm.ErrRecordNotFound:
		// no settings row yet; treat every day as working
	default:
		return nil, fmt.Errorf("failed to load company info: %w", err)
	}

	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return NewTatCalendar(dates, weekendDays), nil
}

// IsWorkingDay reports whether the date is neither a configured weekend day
// nor a holiday. Time-of-day is ignored.
func (c *TatCalendar) IsWorkingDay(day time.Time) bool {
	day = utils.TruncateToDay(day)
	if _, ok := c.weekends[strings.ToLower(day.Weekday().String())]; ok {
		return false
	}
	_, holiday := c.holidays[utils.FormatDate(day)]
	return !holiday
}

// DueDate walks forward from start until tatDays working days have elapsed.
//
// tatDays == 0 is a distinct case: the walk advances only while the current
// day is non-working, so a start that is already a working day is returned
// unchanged. For tatDays >= 1 the start day itself is never counted; only
// days strictly after it count toward the total.
func (c *TatCalendar) DueDate(start time.Time, tatDays int) time.Time {
	day := utils.TruncateToDay(start)
	if tatDays <= 0 {
		for !c.IsWorkingDay(day) {
			day = day.AddDate(0, 0, 1)
		}
		return day
	}

	remaining := tatDays
	for remaining > 0 {
		day = day.AddDate(0, 0, 1)
		if c.IsWorkingDay(day) {
			remaining--
		}
	}
	return day
}

// ActualCalendarDays returns the number of calendar days that elapse from
// start until tatDays working days (strictly after start) have been
// encountered. The start day is excluded from the count.
func (c *TatCalendar) ActualCalendarDays(start time.Time, tatDays int) int {
	if tatDays <= 0 {
		return 0
	}
	day := utils.TruncateToDay(start)
	totalDays := 0
	remaining := tatDays
	for remaining > 0 {
		day = day.AddDate(0, 0, 1)
		totalDays++
		if c.IsWorkingDay(day) {
			remaining--
		}
	}
	return totalDays
}

// TatProgress reports where a case stands against its deadline.
type TatProgress struct {
	Status          string `json:"status"`
	TotalDaysNeeded int    `json:"total_days_needed"`
	DaysPassed      int    `json:"days_passed"`
	Remaining       int    `json:"remaining,omitempty"`
	ExceededBy      int    `json:"exceeded_by,omitempty"`
}

// Progress classifies the case against today's wall-clock date.
func (c *TatCalendar) Progress(start time.Time, tatDays int) TatProgress {
	return c.progressAt(start, tatDays, time.Now())
}

func (c *TatCalendar) progressAt(start time.Time, tatDays int, today time.Time) TatProgress {
	needed := c.ActualCalendarDays(start, tatDays)
	passed := utils.DaysBetween(start, today)

	p := TatProgress{TotalDaysNeeded: needed, DaysPassed: passed}
	switch {
	case passed < needed:
		p.Status = TatEarly
		p.Remaining = needed - passed
	case passed == needed:
		p.Status = TatOnTime
	default:
		p.Status = TatExceed
		p.ExceededBy = passed - needed
	}
	return p
}

// ParseTatDays coerces the customer's free-text tat_days value. Non-numeric
// or negative values degrade to 0 rather than erroring.
func ParseTatDays(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
