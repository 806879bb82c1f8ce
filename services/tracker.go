package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"bgv-management-api/models"
	"bgv-management-api/utils"
)

// TrackerService answers the client-master-tracker listing, detail, and
// badge-count queries. Every listing row carries deadline fields derived from
// the TAT calendar at read time, so a changed customer tat_days takes effect
// on the next fetch without touching stored rows.
type TrackerService struct {
	db *gorm.DB
}

func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{db: db}
}

// StatusFilterClause resolves a named tracker filter into a SQL fragment over
// the joined listing (aliases: ca = client_applications, cmt =
// cmt_applications). The same fragments drive both row listings and the badge
// counts, so the classification boundaries cannot drift apart.
//
// Completed-color filters match the current month in both historical
// report_date formats (YYYY-MM-DD and DD-MM-YYYY); both LIKE patterns are
// required until the stored dates are migrated to one format.
func StatusFilterClause(filter string, month time.Time) (string, []interface{}, bool) {
	isoPattern, legacyPattern := utils.MonthLikePatterns(month)
	completedColor := func(color string) (string, []interface{}, bool) {
		return "cmt.overall_status IN ('completed','complete') AND (cmt.report_date LIKE ? OR cmt.report_date LIKE ?) AND cmt.final_verification_status = ?",
			[]interface{}{isoPattern, legacyPattern, color}, true
	}

	switch filter {
	case "wip":
		return "cmt.overall_status = 'wip'", nil, true
	case "insuff":
		return "cmt.overall_status = 'insuff'", nil, true
	case "completed":
		return "cmt.overall_status IN ('completed','complete')", nil, true
	case "completedGreen":
		return completedColor("GREEN")
	case "completedRed":
		return completedColor("RED")
	case "completedYellow":
		return completedColor("YELLOW")
	case "completedPink":
		return completedColor("PINK")
	case "completedOrange":
		return completedColor("ORANGE")
	case "previousCompleted":
		return "cmt.overall_status IN ('completed','complete') AND cmt.report_date IS NOT NULL AND cmt.report_date NOT LIKE ? AND cmt.report_date NOT LIKE ?",
			[]interface{}{isoPattern, legacyPattern}, true
	case "stopcheck":
		return "cmt.overall_status = 'stopcheck'", nil, true
	case "nil":
		return "cmt.overall_status = 'nil'", nil, true
	case "notDoable":
		return "cmt.overall_status = 'not doable'", nil, true
	case "candidateDenied":
		return "cmt.overall_status = 'candidate denied'", nil, true
	case "qcPending":
		return "ca.is_data_qc != 1", nil, true
	case "qcDone":
		return "ca.is_data_qc = 1", nil, true
	case "reportCompleted":
		return "ca.is_report_completed = 1", nil, true
	case "highlight":
		return "ca.is_highlight = 1", nil, true
	case "notReady":
		return "(cmt.id IS NULL OR cmt.overall_status IS NULL OR cmt.overall_status = '')", nil, true
	}
	return "", nil, false
}

// TrackerFilterNames lists every named filter, in the order the UI renders
// its badges.
var TrackerFilterNames = []string{
	"wip", "insuff", "completed",
	"completedGreen", "completedRed", "completedYellow", "completedPink", "completedOrange",
	"previousCompleted", "stopcheck", "nil", "notDoable", "candidateDenied",
	"qcPending", "qcDone", "reportCompleted", "highlight", "notReady",
}

// ApplicationListItem is one tracker listing row with its derived deadline
// fields.
type ApplicationListItem struct {
	models.ClientApplication
	CustomerName            string  `json:"customer_name"`
	OverallStatus           *string `json:"overall_status,omitempty"`
	FinalVerificationStatus *string `json:"final_verification_status,omitempty"`
	ReportDate              *string `json:"report_date,omitempty"`
	IsVerify                *string `json:"is_verify,omitempty"`
	QcDoneByName            *string `json:"qc_done_by_name,omitempty"`
	ReportGenerateByName    *string `json:"report_generate_by_name,omitempty"`

	NewDeadlineDate       string `json:"new_deadline_date,omitempty"`
	TatDays               int    `json:"tat_days"`
	ReportCompletedStatus string `json:"report_completed_status,omitempty"`
}

type trackerRow struct {
	models.ClientApplication
	CustomerName            string  `gorm:"column:customer_name"`
	CustomerTatDays         string  `gorm:"column:customer_tat_days"`
	OverallStatus           *string `gorm:"column:overall_status"`
	FinalVerificationStatus *string `gorm:"column:final_verification_status"`
	ReportDate              *string `gorm:"column:report_date"`
	IsVerify                *string `gorm:"column:is_verify"`
	QcDoneByName            *string `gorm:"column:qc_done_by_name"`
	ReportGenerateByName    *string `gorm:"column:report_generate_by_name"`
}

const trackerSelect = "ca.*, c.name AS customer_name, c.tat_days AS customer_tat_days, " +
	"cmt.overall_status, cmt.final_verification_status, cmt.report_date, cmt.is_verify, " +
	"qc.name AS qc_done_by_name, rg.name AS report_generate_by_name"

func (s *TrackerService) baseQuery() *gorm.DB {
	return s.db.Table("client_applications ca").
		Select(trackerSelect).
		Joins("JOIN customers c ON c.customer_id = ca.customer_id").
		Joins("LEFT JOIN cmt_applications cmt ON cmt.client_application_id = ca.id").
		Joins("LEFT JOIN admins qc ON qc.admin_id = cmt.qc_done_by").
		Joins("LEFT JOIN admins rg ON rg.admin_id = cmt.report_generate_by").
		Where("ca.is_deleted != 1")
}

// ListApplicationsByBranch returns the tracker rows for a branch, optionally
// narrowed by a named status filter. month scopes the completed-color
// filters; the zero value means the current month.
func (s *TrackerService) ListApplicationsByBranch(branchID int, statusFilter string, month time.Time) ([]ApplicationListItem, error) {
	if month.IsZero() {
		month = time.Now()
	}

	query := s.baseQuery().Where("ca.branch_id = ?", branchID)
	if statusFilter != "" {
		clause, args, ok := StatusFilterClause(statusFilter, month)
		if !ok {
			return nil, fmt.Errorf("unknown status filter %q", statusFilter)
		}
		query = query.Where(clause, args...)
	}

	var rows []trackerRow
	if err := query.Order("ca.created_at DESC, ca.is_highlight DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications for branch %d: %w", branchID, err)
	}

	calendar, err := LoadTatCalendar(s.db)
	if err != nil {
		return nil, err
	}

	items := make([]ApplicationListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.decorate(row, calendar))
	}
	return items, nil
}

func (s *TrackerService) decorate(row trackerRow, calendar *TatCalendar) ApplicationListItem {
	item := ApplicationListItem{
		ClientApplication:       row.ClientApplication,
		CustomerName:            row.CustomerName,
		OverallStatus:           row.OverallStatus,
		FinalVerificationStatus: row.FinalVerificationStatus,
		ReportDate:              row.ReportDate,
		IsVerify:                row.IsVerify,
		QcDoneByName:            row.QcDoneByName,
		ReportGenerateByName:    row.ReportGenerateByName,
	}

	if row.CreatedAt == nil {
		return item
	}
	tatDays := ParseTatDays(row.CustomerTatDays)
	item.NewDeadlineDate = utils.FormatDate(calendar.DueDate(*row.CreatedAt, tatDays))
	item.TatDays = calendar.ActualCalendarDays(*row.CreatedAt, tatDays)
	if row.IsReportCompleted == 1 {
		item.ReportCompletedStatus = calendar.Progress(*row.CreatedAt, tatDays).Status
	}
	return item
}

// FilterOptionCounts returns the badge count for every named filter. Either
// scope may be zero to leave it unconstrained.
func (s *TrackerService) FilterOptionCounts(customerID, branchID int, month time.Time) (map[string]int64, error) {
	if month.IsZero() {
		month = time.Now()
	}

	counts := make(map[string]int64, len(TrackerFilterNames))
	for _, name := range TrackerFilterNames {
		clause, args, _ := StatusFilterClause(name, month)

		query := s.db.Table("client_applications ca").
			Joins("LEFT JOIN cmt_applications cmt ON cmt.client_application_id = ca.id").
			Where("ca.is_deleted != 1").
			Where(clause, args...)
		if customerID != 0 {
			query = query.Where("ca.customer_id = ?", customerID)
		}
		if branchID != 0 {
			query = query.Where("ca.branch_id = ?", branchID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count filter %s: %w", name, err)
		}
		counts[name] = count
	}
	return counts, nil
}

// GetApplicationByID fetches one tracker row with the same derived fields as
// the listing. Returns (nil, nil) when no row matches, letting the caller
// decide on 404 semantics.
func (s *TrackerService) GetApplicationByID(applicationID int) (*ApplicationListItem, error) {
	var rows []trackerRow
	err := s.baseQuery().Where("ca.id = ?", applicationID).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application %d: %w", applicationID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	calendar, err := LoadTatCalendar(s.db)
	if err != nil {
		return nil, err
	}
	item := s.decorate(rows[0], calendar)
	return &item, nil
}

// GetCmtApplicationByID fetches the main tracker record for a case. Returns
// (nil, nil) when the case has no cmt row yet.
func (s *TrackerService) GetCmtApplicationByID(clientApplicationID int) (*models.CmtApplication, error) {
	var cmt models.CmtApplication
	err := s.db.Where("client_application_id = ?", clientApplicationID).First(&cmt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch cmt application %d: %w", clientApplicationID, err)
	}
	return &cmt, nil
}
