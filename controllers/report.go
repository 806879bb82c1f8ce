package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bgv-management-api/config"
	"bgv-management-api/models"
	"bgv-management-api/services"
)

type GenerateReportRequest struct {
	ClientApplicationID int                    `json:"client_application_id" binding:"required"`
	BranchID            int                    `json:"branch_id" binding:"required"`
	DataQC              int                    `json:"data_qc"`
	SendMail            int                    `json:"send_mail"`
	Payload             map[string]interface{} `json:"payload" binding:"required"`
}

// GenerateReport persists a report submission and runs the case workflow:
// annexure upserts, QC flag, status propagation, and the notification
// decision. Per-annexure failures are reported in the response rather than
// failing the whole request.
func GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}

	report := services.NewReportService(config.DB,
		services.NewNotificationService(config.DB),
		services.NewReportPDFService(config.DB))

	result, err := report.GenerateReport(services.GenerateReportInput{
		ClientApplicationID: req.ClientApplicationID,
		BranchID:            req.BranchID,
		Payload:             req.Payload,
		DataQC:              req.DataQC,
		SendMail:            req.SendMail,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "result": result})
}

// DownloadReport regenerates and serves the final report PDF. Guarded by the
// QC gate: the report surface stays closed until data QC is done.
func DownloadReport(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: id"})
		return
	}

	var app models.ClientApplication
	if err := config.DB.Where("id = ? AND is_deleted != 1", id).First(&app).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Application not found"})
		return
	}
	if app.IsDataQC != 1 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Data QC for application data is pending"})
		return
	}

	pdf := services.NewReportPDFService(config.DB)
	storedPath, err := pdf.Generate(app.ID, app.BranchID, services.ReportFileName(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}

	if err := config.DB.Model(&models.ClientApplication{}).Where("id = ?", app.ID).
		Update("is_report_downloaded", 1).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to record download"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "path": storedPath})
}
