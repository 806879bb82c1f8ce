package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"bgv-management-api/models"
	"bgv-management-api/utils"
)

// Per-annexure outcome labels. One report submission writes many annexure
// tables; callers get per-table visibility instead of an all-or-nothing
// transaction result.
const (
	AnnexureUpdated      = "updated"
	AnnexureUpdateFailed = "update_failed"
	AnnexureSkipped      = "skipped"
)

// completedColorTokens are the color_status values that mark an annexure
// component as finished. A case whose components are all in this set is
// ready for report generation even before its overall status flips.
var completedColorTokens = map[string]struct{}{
	"completed":        {},
	"completed_green":  {},
	"completed_red":    {},
	"completed_yellow": {},
	"completed_pink":   {},
	"completed_orange": {},
}

// ReportService runs the report-submission workflow: persist the flattened
// payload, advance the case state, and decide which notification (if any) to
// request.
type ReportService struct {
	db       *gorm.DB
	tables   *DynamicTableService
	notifier ReportNotifier
	pdf      PDFGenerator
	now      func() time.Time
}

func NewReportService(db *gorm.DB, notifier ReportNotifier, pdf PDFGenerator) *ReportService {
	return &ReportService{
		db:       db,
		tables:   NewDynamicTableService(db),
		notifier: notifier,
		pdf:      pdf,
		now:      time.Now,
	}
}

// GenerateReportInput is one report submission.
type GenerateReportInput struct {
	ClientApplicationID int
	BranchID            int
	Payload             map[string]interface{}
	DataQC              int
	SendMail            int
}

// AnnexureResult reports what happened to one annexure table's upsert.
type AnnexureResult struct {
	Table  string `json:"table"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// GenerateReportResult is the workflow outcome. Notification names which mail
// was requested, empty when none was.
type GenerateReportResult struct {
	Annexures    []AnnexureResult `json:"annexures"`
	Notification string           `json:"notification,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// GenerateReport persists a report submission and walks the case state
// machine. Returns (nil, nil) when the application does not exist.
//
// The sequence deliberately mirrors the workflow's guard structure: the
// QC-flag write always happens, and two silent success returns (data_qc == 0,
// and a missing overall_status or is_verify) come before any status
// propagation or mail.
func (s *ReportService) GenerateReport(in GenerateReportInput) (*GenerateReportResult, error) {
	var app models.ClientApplication
	err := s.db.Where("id = ? AND branch_id = ? AND is_deleted != 1", in.ClientApplicationID, in.BranchID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load application %d: %w", in.ClientApplicationID, err)
	}

	flat, err := FlattenPayload(in.Payload)
	if err != nil {
		return nil, err
	}

	cmtID, err := s.tables.UpsertRecord("cmt_applications", "client_application_id", app.ID,
		flat.MainFields,
		map[string]interface{}{"branch_id": app.BranchID, "customer_id": app.CustomerID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save tracker record: %w", err)
	}

	result := &GenerateReportResult{Annexures: s.writeAnnexures(&app, cmtID, flat.Annexures)}

	if err := s.db.Model(&models.ClientApplication{}).Where("id = ?", app.ID).
		Update("is_data_qc", in.DataQC).Error; err != nil {
		return nil, fmt.Errorf("failed to update qc flag: %w", err)
	}

	if in.DataQC == 0 {
		result.Message = "Report data saved, QC pending"
		return result, nil
	}

	overallStatus := stringField(flat.MainFields, "overall_status")
	isVerify := stringField(flat.MainFields, "is_verify")
	if overallStatus == "" || isVerify == "" {
		result.Message = "Report data saved"
		return result, nil
	}

	if err := s.db.Model(&models.ClientApplication{}).Where("id = ?", app.ID).
		Update("status", overallStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	switch strings.ToLower(overallStatus) {
	case "completed", "complete":
		if strings.EqualFold(isVerify, "yes") {
			return s.finishVerified(&app, in.SendMail, result)
		}
		return s.finishUnverified(&app, in.SendMail, result)
	default:
		return s.finishInProgress(&app, in.SendMail, flat.Annexures, result)
	}
}

// writeAnnexures upserts every annexure map, collecting a best-effort result
// per table. One failing annexure does not abort the rest.
func (s *ReportService) writeAnnexures(app *models.ClientApplication, cmtID int64, annexures map[string]map[string]interface{}) []AnnexureResult {
	names := make([]string, 0, len(annexures))
	for name := range annexures {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]AnnexureResult, 0, len(names))
	for _, name := range names {
		fields := annexures[name]
		if len(fields) == 0 {
			results = append(results, AnnexureResult{Table: name, Status: AnnexureSkipped})
			continue
		}
		_, err := s.tables.Upsert(name, "client_application_id", app.ID, fields,
			map[string]interface{}{
				"cmt_id":      cmtID,
				"branch_id":   app.BranchID,
				"customer_id": app.CustomerID,
			},
		)
		if err != nil {
			log.Printf("annexure %s upsert failed for application %d: %v", name, app.ID, err)
			results = append(results, AnnexureResult{Table: name, Status: AnnexureUpdateFailed, Error: err.Error()})
			continue
		}
		results = append(results, AnnexureResult{Table: name, Status: AnnexureUpdated})
	}
	return results
}

func (s *ReportService) finishVerified(app *models.ClientApplication, sendMail int, result *GenerateReportResult) (*GenerateReportResult, error) {
	now := s.now()
	err := s.db.Model(&models.ClientApplication{}).Where("id = ?", app.ID).
		Updates(map[string]interface{}{"is_report_completed": 1, "report_completed_at": now}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to mark report completed: %w", err)
	}

	if sendMail == 0 {
		result.Message = "Report completed"
		return result, nil
	}

	params, err := s.notificationParams(app)
	if err != nil {
		return nil, err
	}

	storedPath, err := s.pdf.Generate(app.ID, app.BranchID, ReportFileName(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to generate report pdf: %w", err)
	}
	params.AttachmentPath = storedPath
	params.AttachmentURL = attachmentURL(s.db, storedPath)

	if err := s.notifier.FinalReport(params); err != nil {
		log.Printf("final report mail failed for application %d: %v", app.ID, err)
		result.Message = "Report completed, mail delivery failed"
	} else {
		result.Message = "Report completed"
	}
	result.Notification = NotificationFinalReport
	return result, nil
}

func (s *ReportService) finishUnverified(app *models.ClientApplication, sendMail int, result *GenerateReportResult) (*GenerateReportResult, error) {
	err := s.db.Model(&models.ClientApplication{}).Where("id = ?", app.ID).
		Update("is_report_completed", 0).Error
	if err != nil {
		return nil, fmt.Errorf("failed to clear report-completed flag: %w", err)
	}

	if sendMail == 0 {
		result.Message = "Report saved, verification pending"
		return result, nil
	}

	params, err := s.notificationParams(app)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.QcReportCheck(params); err != nil {
		log.Printf("qc check mail failed for application %d: %v", app.ID, err)
		result.Message = "Report saved, mail delivery failed"
	} else {
		result.Message = "Report saved, verification pending"
	}
	result.Notification = NotificationQcCheck
	return result, nil
}

func (s *ReportService) finishInProgress(app *models.ClientApplication, sendMail int, annexures map[string]map[string]interface{}, result *GenerateReportResult) (*GenerateReportResult, error) {
	err := s.db.Model(&models.ClientApplication{}).Where("id = ?", app.ID).
		Update("is_report_completed", 0).Error
	if err != nil {
		return nil, fmt.Errorf("failed to clear report-completed flag: %w", err)
	}

	if !AllComponentsCompleted(annexures) || sendMail == 0 {
		result.Message = "Report data saved"
		return result, nil
	}

	params, err := s.notificationParams(app)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.ReadyForReport(params); err != nil {
		log.Printf("ready-for-report mail failed for application %d: %v", app.ID, err)
		result.Message = "Report data saved, mail delivery failed"
	} else {
		result.Message = "Report data saved"
	}
	result.Notification = NotificationReadyForReport
	return result, nil
}

// AllComponentsCompleted reports whether every color_status* field across
// every submitted annexure holds a completed color token. Annexures without
// color_status fields do not veto.
func AllComponentsCompleted(annexures map[string]map[string]interface{}) bool {
	for _, fields := range annexures {
		for name, value := range fields {
			if !strings.HasPrefix(name, "color_status") {
				continue
			}
			token := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", value)))
			if _, ok := completedColorTokens[token]; !ok {
				return false
			}
		}
	}
	return true
}

// notificationParams re-reads the freshly written cmt row so the mail carries
// the values as persisted, not as submitted.
func (s *ReportService) notificationParams(app *models.ClientApplication) (NotificationParams, error) {
	var cmt models.CmtApplication
	if err := s.db.Where("client_application_id = ?", app.ID).First(&cmt).Error; err != nil {
		return NotificationParams{}, fmt.Errorf("failed to re-read tracker record for %d: %w", app.ID, err)
	}
	var customer models.Customer
	if err := s.db.Where("customer_id = ?", app.CustomerID).First(&customer).Error; err != nil {
		return NotificationParams{}, fmt.Errorf("failed to load customer %d: %w", app.CustomerID, err)
	}

	return NotificationParams{
		Application:    *app,
		Customer:       customer,
		Salutation:     utils.Salutation(deref(cmt.Gender), deref(cmt.MaritalStatus)),
		ReportType:     deref(cmt.ReportType),
		ReportDate:     deref(cmt.ReportDate),
		InitiationDate: deref(cmt.InitiationDate),
		OverallStatus:  deref(cmt.OverallStatus),
	}, nil
}

// attachmentURL prefixes a stored relative path with the configured image
// host to form the externally reachable URL.
func attachmentURL(db *gorm.DB, storedPath string) string {
	var info models.CompanyInfo
	if err := db.First(&info).Error; err != nil || info.ImageHost == "" {
		return storedPath
	}
	return strings.TrimRight(info.ImageHost, "/") + "/" + strings.TrimLeft(strings.ReplaceAll(storedPath, "\\", "/"), "/")
}

func stringField(fields map[string]interface{}, name string) string {
	v, ok := fields[name]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
