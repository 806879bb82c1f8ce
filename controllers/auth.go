package controllers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bgv-management-api/config"
	"bgv-management-api/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an admin and issues a fresh login token. The
// token is persisted on the admin row; the auth middleware later validates
// by exact comparison against that stored value.
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ? AND status = ?", req.Email, "active").First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid email or password"})
		return
	}

	if !CheckPasswordHash(req.Password, admin.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid email or password"})
		return
	}

	token, expiry, err := issueToken(admin.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to generate token"})
		return
	}

	err = config.DB.Model(&models.Admin{}).Where("admin_id = ?", admin.AdminID).
		Updates(map[string]interface{}{"login_token": token, "token_expiry": expiry}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to store token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"token":   token,
		"admin":   admin,
		"message": "Login successful",
	})
}

// BranchLogin authenticates a branch/customer user the same way.
func BranchLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": err.Error()})
		return
	}

	var branch models.Branch
	err := config.DB.Where("email = ? AND status = ? AND deleted_at IS NULL", req.Email, "active").
		First(&branch).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid email or password"})
		return
	}

	if !CheckPasswordHash(req.Password, branch.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "Invalid email or password"})
		return
	}

	token, expiry, err := issueToken(branch.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to generate token"})
		return
	}

	err = config.DB.Model(&models.Branch{}).Where("branch_id = ?", branch.BranchID).
		Updates(map[string]interface{}{"login_token": token, "token_expiry": expiry}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to store token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"token":   token,
		"branch":  branch,
		"message": "Login successful",
	})
}

// AdminLogout clears the stored token.
func AdminLogout(c *gin.Context) {
	adminID, _ := c.Get("adminID")
	err := config.DB.Model(&models.Admin{}).Where("admin_id = ?", adminID).
		Updates(map[string]interface{}{"login_token": nil, "token_expiry": nil}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out"})
}

// BranchLogout clears the stored token.
func BranchLogout(c *gin.Context) {
	branchID, _ := c.Get("branchID")
	err := config.DB.Model(&models.Branch{}).Where("branch_id = ?", branchID).
		Updates(map[string]interface{}{"login_token": nil, "token_expiry": nil}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out"})
}

// issueToken creates the opaque login token. A signed JWT doubles as a
// random expiring token value; the middleware validates by stored-string
// comparison, not signature verification.
func issueToken(email string) (string, time.Time, error) {
	expireHours, err := strconv.Atoi(os.Getenv("TOKEN_EXPIRE_HOURS"))
	if err != nil {
		expireHours = 24
	}
	expiry := time.Now().Add(time.Duration(expireHours) * time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(expiry),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiry, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
