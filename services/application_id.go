package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"bgv-management-api/models"
)

// GenerateApplicationID produces the next human-readable application id for a
// branch: the owning customer's client_unique_id prefix followed by a
// per-customer sequence number.
//
// The latest-id read and the subsequent insert are not serialized; two
// concurrent intakes for the same customer can mint the same id. Downstream
// consumers tolerate duplicates, so the behavior is kept as-is.
func GenerateApplicationID(db *gorm.DB, branchID int) (string, error) {
	var branch models.Branch
	if err := db.Where("branch_id = ?", branchID).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("branch %d not found", branchID)
		}
		return "", fmt.Errorf("failed to load branch %d: %w", branchID, err)
	}

	var customer models.Customer
	if err := db.Where("customer_id = ?", branch.CustomerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("customer %d not found", branch.CustomerID)
		}
		return "", fmt.Errorf("failed to load customer %d: %w", branch.CustomerID, err)
	}

	prefix := strings.TrimSpace(customer.ClientUniqueID)
	if prefix == "" {
		return "", fmt.Errorf("customer %d has no client_unique_id", customer.CustomerID)
	}

	var latest models.ClientApplication
	err := db.Where("application_id LIKE ?", prefix+"%").
		Order("created_at DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NextApplicationID(prefix, ""), nil
		}
		return "", fmt.Errorf("failed to load latest application for %s: %w", prefix, err)
	}
	return NextApplicationID(prefix, latest.ApplicationID), nil
}

// NextApplicationID increments the numeric suffix of the latest id. A missing
// latest id, or one whose final "-" token is not an integer, restarts the
// sequence at "<prefix>-1".
func NextApplicationID(prefix, latestID string) string {
	if latestID == "" {
		return prefix + "-1"
	}
	parts := strings.Split(latestID, "-")
	last := parts[len(parts)-1]
	n, err := strconv.Atoi(last)
	if err != nil {
		return prefix + "-1"
	}
	parts[len(parts)-1] = strconv.Itoa(n + 1)
	return strings.Join(parts, "-")
}
