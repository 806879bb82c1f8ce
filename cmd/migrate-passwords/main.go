// Migration script to hash existing plaintext passwords
// cmd/migrate-passwords/main.go
package main

import (
	"log"
	"strings"

	"bgv-management-api/config"
	"bgv-management-api/controllers"
	"bgv-management-api/models"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	migrated := 0

	var admins []models.Admin
	if err := config.DB.Find(&admins).Error; err != nil {
		log.Fatal("Failed to fetch admins:", err)
	}
	for _, admin := range admins {
		if rehash("admin", admin.Email, admin.Password, func(hashed string) error {
			return config.DB.Model(&admin).Update("password", hashed).Error
		}) {
			migrated++
		}
	}

	var branches []models.Branch
	if err := config.DB.Find(&branches).Error; err != nil {
		log.Fatal("Failed to fetch branches:", err)
	}
	for _, branch := range branches {
		if rehash("branch", branch.Email, branch.Password, func(hashed string) error {
			return config.DB.Model(&branch).Update("password", hashed).Error
		}) {
			migrated++
		}
	}

	log.Printf("Password migration completed, %d account(s) updated", migrated)
}

func rehash(kind, email, password string, save func(string) error) bool {
	// Skip if already hashed (bcrypt hashes start with $2)
	if strings.HasPrefix(password, "$2") {
		log.Printf("%s %s already has hashed password, skipping\n", kind, email)
		return false
	}

	hashed, err := controllers.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password for %s %s: %v\n", kind, email, err)
		return false
	}
	if err := save(hashed); err != nil {
		log.Printf("Failed to update password for %s %s: %v\n", kind, email, err)
		return false
	}

	log.Printf("Successfully updated password for %s %s\n", kind, email)
	return true
}
