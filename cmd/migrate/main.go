// Command migrate creates the fixed base tables and seeds the company
// settings row. The annexure tables are not created here; they appear on
// first use through the dynamic table service.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"bgv-management-api/config"
	"bgv-management-api/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	err := config.DB.AutoMigrate(
		&models.Admin{},
		&models.Permission{},
		&models.Customer{},
		&models.Branch{},
		&models.ClientApplication{},
		&models.CmtApplication{},
		&models.Holiday{},
		&models.CompanyInfo{},
		&models.Service{},
		&models.ReportForm{},
		&models.EmailTemplate{},
		&models.EmailCredential{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	var count int64
	if err := config.DB.Model(&models.CompanyInfo{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to check company settings:", err)
	}
	if count == 0 {
		seed := models.CompanyInfo{
			CompanyName: "BGV Platform",
			WeekendDays: `["saturday","sunday"]`,
		}
		if err := config.DB.Create(&seed).Error; err != nil {
			log.Fatal("Failed to seed company settings:", err)
		}
		log.Println("Seeded company settings")
	}

	log.Println("Migration complete")
}
