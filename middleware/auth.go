package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bgv-management-api/config"
	"bgv-management-api/models"
	"bgv-management-api/utils"
)

// AdminAuthMiddleware validates the admin token. Tokens are opaque strings
// compared for exact equality against the stored login_token; there is no
// refresh flow, only the expiry check.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if msg := utils.MissingFieldsMessage(map[string]string{"_token": token}); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": msg})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := config.DB.Where("login_token = ?", token).First(&admin).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}
		if admin.TokenExpiry == nil || admin.TokenExpiry.Before(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("adminID", admin.AdminID)
		c.Set("adminRole", admin.Role)
		c.Next()
	}
}

// BranchAuthMiddleware validates the branch user token the same way.
func BranchAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if msg := utils.MissingFieldsMessage(map[string]string{"_token": token}); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": msg})
			c.Abort()
			return
		}

		var branch models.Branch
		if err := config.DB.Where("login_token = ?", token).First(&branch).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}
		if branch.TokenExpiry == nil || branch.TokenExpiry.Before(time.Now()) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("branchID", branch.BranchID)
		c.Set("customerID", branch.CustomerID)
		c.Next()
	}
}

// RequirePermission checks the admin role's permission flags for an action,
// stored as a JSON object of {"module": {"action": true}}.
func RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"status": false, "message": "Permission denied"})
			c.Abort()
			return
		}

		var permission models.Permission
		if err := config.DB.Where("role = ?", role).First(&permission).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"status": false, "message": "Permission denied"})
			c.Abort()
			return
		}

		var flags map[string]map[string]bool
		if err := json.Unmarshal([]byte(permission.Json), &flags); err != nil || !flags[module][action] {
			c.JSON(http.StatusForbidden, gin.H{"status": false, "message": "Permission denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}
	// legacy clients send the token as a query parameter
	return strings.TrimSpace(c.Query("_token"))
}
