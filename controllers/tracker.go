package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bgv-management-api/config"
	"bgv-management-api/services"
	"bgv-management-api/utils"
)

// ListApplications renders the client-master-tracker listing for a branch,
// with deadline fields derived per row from the TAT calendar.
func ListApplications(c *gin.Context) {
	if msg := utils.MissingFieldsMessage(map[string]string{"branch_id": c.Query("branch_id")}); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": msg})
		return
	}
	branchID, err := strconv.Atoi(c.Query("branch_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Invalid branch_id"})
		return
	}

	month := parseMonth(c.Query("month"))
	tracker := services.NewTrackerService(config.DB)
	items, err := tracker.ListApplicationsByBranch(branchID, c.Query("status"), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       true,
		"applications": items,
		"total":        len(items),
	})
}

// FilterOptions returns the badge counts for every named tracker filter,
// scoped by customer and/or branch.
func FilterOptions(c *gin.Context) {
	customerID, _ := strconv.Atoi(c.Query("customer_id"))
	branchID, _ := strconv.Atoi(c.Query("branch_id"))
	if customerID == 0 && branchID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  false,
			"message": utils.MissingFieldsMessage(map[string]string{"branch_id": "", "customer_id": ""}),
		})
		return
	}

	tracker := services.NewTrackerService(config.DB)
	counts, err := tracker.FilterOptionCounts(customerID, branchID, parseMonth(c.Query("month")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "counts": counts})
}

// GetApplication returns one tracker row with its derived deadline fields
// and the full tracker record.
func GetApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Missing required fields: id"})
		return
	}

	tracker := services.NewTrackerService(config.DB)
	item, err := tracker.GetApplicationByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": false, "message": "Application not found"})
		return
	}

	cmt, err := tracker.GetCmtApplicationByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      true,
		"application": item,
		"cmt":         cmt,
	})
}

// parseMonth accepts "2006-01"; zero means current month.
func parseMonth(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
