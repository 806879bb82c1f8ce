package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bgv-management-api/config"
	"bgv-management-api/models"
)

// GetServices lists the verification service catalog.
func GetServices(c *gin.Context) {
	var listing []models.Service
	if err := config.DB.Where("status = ?", "active").Order("title ASC").Find(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "services": listing, "total": len(listing)})
}

// GetReportForm returns the report-form descriptor for a service, parsed
// from its stored JSON.
func GetReportForm(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: service_id"})
		return
	}

	var form models.ReportForm
	if err := config.DB.Where("service_id = ?", serviceID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Report form not found"})
		return
	}

	def, err := form.Definition()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Invalid report form definition"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "report_form": def})
}
