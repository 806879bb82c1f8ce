package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"bgv-management-api/config"
	"bgv-management-api/models"

	"github.com/joho/godotenv"
)

// Provisions the upload directory tree for every customer so report
// generation never races a first-time mkdir on a shared mount.
func main() {
	log.Println("Starting customer folder provisioning...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	config.InitDB()

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	if err := os.MkdirAll(filepath.Join(uploadPath, "customer"), 0755); err != nil {
		log.Fatalf("failed to prepare base upload directory: %v", err)
	}

	var customers []models.Customer
	if err := config.DB.Find(&customers).Error; err != nil {
		log.Fatal("Failed to fetch customers:", err)
	}

	var (
		succeeded int
		failed    []string
	)
	for _, customer := range customers {
		code := strings.TrimSpace(customer.ClientUniqueID)
		if code == "" {
			log.Printf("customer %d has no client_unique_id, skipping", customer.CustomerID)
			failed = append(failed, customer.Name)
			continue
		}

		folderPath := filepath.Join(uploadPath, "customer", code, "application")
		if err := os.MkdirAll(folderPath, 0755); err != nil {
			log.Printf("failed to create folder for customer %s: %v", code, err)
			failed = append(failed, customer.Name)
			continue
		}
		succeeded++
	}

	if len(failed) > 0 {
		log.Fatalf("completed with errors. successful: %d, failed: %s", succeeded, strings.Join(failed, ", "))
	}
	log.Printf("Successfully provisioned %d customer folder(s)", succeeded)
}
