package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bgv-management-api/config"
	"bgv-management-api/models"
	"bgv-management-api/services"
	"bgv-management-api/utils"
)

type CreateApplicationRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
	Services   string `json:"services" binding:"required"`
}

// CreateApplication opens a new verification case for the authenticated
// branch, minting the next human-readable application id for its customer.
func CreateApplication(c *gin.Context) {
	branchID := c.GetInt("branchID")
	customerID := c.GetInt("customerID")

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}
	if req.Email != "" && !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid email address"})
		return
	}

	applicationID, err := services.GenerateApplicationID(config.DB, branchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}

	app := models.ClientApplication{
		ApplicationID: applicationID,
		CustomerID:    customerID,
		BranchID:      branchID,
		Name:          utils.SanitizeInput(req.Name),
		Email:         utils.SanitizeInput(req.Email),
		EmployeeID:    utils.SanitizeInput(req.EmployeeID),
		Services:      req.Services,
	}
	if err := config.DB.Create(&app).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "application": app})
}

// HighlightApplication toggles the tracker highlight flag.
func HighlightApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: id"})
		return
	}

	var req struct {
		Highlight int `json:"highlight"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}

	result := config.DB.Model(&models.ClientApplication{}).
		Where("id = ? AND is_deleted != 1", id).
		Update("is_highlight", req.Highlight)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to update application"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true})
}

// DeleteApplication soft-deletes a case. Annexure and tracker rows stay in
// place; the case just disappears from listings.
func DeleteApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: id"})
		return
	}

	result := config.DB.Model(&models.ClientApplication{}).
		Where("id = ?", id).
		Update("is_deleted", 1)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to delete application"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Application deleted"})
}

// DestroyApplication physically removes the case. The annexure tables carry
// ON DELETE CASCADE foreign keys to client_applications, so their rows go
// with it; the cmt row is removed explicitly first.
func DestroyApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: id"})
		return
	}

	if err := config.DB.Where("client_application_id = ?", id).Delete(&models.CmtApplication{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to remove tracker record"})
		return
	}

	result := config.DB.Where("id = ?", id).Delete(&models.ClientApplication{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to destroy application"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Application destroyed"})
}
