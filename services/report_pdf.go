package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"

	"bgv-management-api/models"
	"bgv-management-api/utils"
)

// PDFGenerator renders the final verification report for a case.
type PDFGenerator interface {
	Generate(applicationID, branchID int, fileName, targetDir string) (string, error)
}

// ReportPDFService draws the final report from the cmt row plus the annexure
// graph, using each service's report-form descriptor for headings and labels.
// Generated files land under uploads/customer/<code>/application/<id>/.
type ReportPDFService struct {
	db      *gorm.DB
	baseDir string
}

func NewReportPDFService(db *gorm.DB) *ReportPDFService {
	baseDir := os.Getenv("UPLOAD_PATH")
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &ReportPDFService{db: db, baseDir: baseDir}
}

// ReportFileName returns a fresh unique name for a generated report.
func ReportFileName() string {
	return fmt.Sprintf("final-report-%s.pdf", uuid.NewString())
}

// Generate renders the report and returns the stored path relative to the
// upload root.
func (s *ReportPDFService) Generate(applicationID, branchID int, fileName, targetDir string) (string, error) {
	var app models.ClientApplication
	if err := s.db.Where("id = ? AND branch_id = ?", applicationID, branchID).First(&app).Error; err != nil {
		return "", fmt.Errorf("failed to load application %d: %w", applicationID, err)
	}

	var cmt models.CmtApplication
	if err := s.db.Where("client_application_id = ?", applicationID).First(&cmt).Error; err != nil {
		return "", fmt.Errorf("application %d has no tracker record: %w", applicationID, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Verification Report %s", app.ApplicationID), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Background Verification Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Application ID: %s", app.ApplicationID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Candidate: %s", app.Name), "", 1, "L", false, 0, "")

	writePair := func(label string, value *string) {
		if value == nil || strings.TrimSpace(*value) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 7, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 7, *value, "1", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	writePair("Overall Status", cmt.OverallStatus)
	writePair("Final Verification Status", cmt.FinalVerificationStatus)
	writePair("Report Type", cmt.ReportType)
	writePair("Report Date", cmt.ReportDate)
	writePair("Initiation Date", cmt.InitiationDate)
	writePair("Deadline Date", cmt.DeadlineDate)

	if err := s.renderAnnexures(pdf, &app); err != nil {
		return "", err
	}

	relDir := targetDir
	if relDir == "" {
		var customer models.Customer
		if err := s.db.Where("customer_id = ?", app.CustomerID).First(&customer).Error; err != nil {
			return "", fmt.Errorf("failed to load customer %d: %w", app.CustomerID, err)
		}
		relDir = filepath.Join("customer", customer.ClientUniqueID, "application", strconv.Itoa(app.ID))
	}
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	storedPath := filepath.Join(relDir, fileName)
	if err := pdf.OutputFileAndClose(filepath.Join(s.baseDir, storedPath)); err != nil {
		return "", fmt.Errorf("failed to write report pdf: %w", err)
	}
	return storedPath, nil
}

func (s *ReportPDFService) renderAnnexures(pdf *gofpdf.Fpdf, app *models.ClientApplication) error {
	for _, serviceID := range splitServiceIDs(app.Services) {
		var form models.ReportForm
		err := s.db.Where("service_id = ?", serviceID).First(&form).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return fmt.Errorf("failed to load report form for service %d: %w", serviceID, err)
		}
		def, err := form.Definition()
		if err != nil {
			return fmt.Errorf("invalid report form json for service %d: %w", serviceID, err)
		}

		tableName := utils.NormalizeTableName(def.DbTable)
		row, err := s.annexureRow(tableName, app.ID)
		if err != nil || row == nil {
			continue
		}

		pdf.AddPage()
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, def.Heading, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)

		for _, formRow := range def.Rows {
			for _, input := range formRow.Inputs {
				value := stringifyCell(row[input.Name])
				if value == "" {
					continue
				}
				pdf.SetFont("Arial", "B", 10)
				pdf.CellFormat(60, 7, input.Label, "1", 0, "L", false, 0, "")
				pdf.SetFont("Arial", "", 10)
				pdf.MultiCell(0, 7, value, "1", "L", false)
			}
		}
	}
	return nil
}

func (s *ReportPDFService) annexureRow(tableName string, clientApplicationID int) (map[string]interface{}, error) {
	if err := validIdentifier(tableName); err != nil {
		return nil, err
	}
	var row map[string]interface{}
	err := s.db.Table(tableName).Where("client_application_id = ?", clientApplicationID).Take(&row).Error
	if err != nil {
		return nil, nil // table or row absent; nothing to render
	}
	return row, nil
}

func splitServiceIDs(services string) []int {
	var ids []int
	for _, part := range strings.Split(services, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func stringifyCell(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
