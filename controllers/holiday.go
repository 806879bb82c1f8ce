package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bgv-management-api/config"
	"bgv-management-api/models"
	"bgv-management-api/utils"
)

// GetHolidays lists the holiday calendar.
func GetHolidays(c *gin.Context) {
	var holidays []models.Holiday
	if err := config.DB.Order("date ASC").Find(&holidays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to fetch holidays"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "holidays": holidays, "total": len(holidays)})
}

type HolidayRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date" binding:"required"`
}

// CreateHoliday adds a holiday. The date must parse in one of the accepted
// calendar formats.
func CreateHoliday(c *gin.Context) {
	var req HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}
	day, ok := utils.ParseCalendarDate(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid date"})
		return
	}

	holiday := models.Holiday{Title: req.Title, Date: utils.FormatDate(day)}
	if err := config.DB.Create(&holiday).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to create holiday"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "holiday": holiday})
}

// DeleteHoliday removes a holiday.
func DeleteHoliday(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: id"})
		return
	}
	result := config.DB.Where("holiday_id = ?", id).Delete(&models.Holiday{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to delete holiday"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Holiday not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Holiday deleted"})
}

// GetWeekendConfig returns the configured non-working weekday names.
func GetWeekendConfig(c *gin.Context) {
	var info models.CompanyInfo
	if err := config.DB.First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Company settings not found"})
		return
	}

	var days []string
	if info.WeekendDays != "" {
		if err := json.Unmarshal([]byte(info.WeekendDays), &days); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Invalid weekend configuration"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "weekend_days": days})
}

// SetWeekendConfig stores the weekend weekday names on the settings row.
func SetWeekendConfig(c *gin.Context) {
	var req struct {
		WeekendDays []string `json:"weekend_days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}

	encoded, err := json.Marshal(req.WeekendDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid weekend configuration"})
		return
	}

	var info models.CompanyInfo
	if err := config.DB.First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Company settings not found"})
		return
	}
	err = config.DB.Model(&info).Update("weekend_days", string(encoded)).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to update weekend configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Weekend configuration updated"})
}
