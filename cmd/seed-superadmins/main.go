// Pre-registers SuperAdmin accounts listed in SUPER_ADMIN_EMAILS
// (comma-separated). Existing emails are skipped; generated passwords are
// printed once so they can be delivered out of band.
package main

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"partnership-management-api/config"
	"partnership-management-api/models"
	"partnership-management-api/services"
	"partnership-management-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	emails := strings.Split(os.Getenv("SUPER_ADMIN_EMAILS"), ",")
	seeded := 0

	for _, raw := range emails {
		email := utils.SanitizeInput(raw)
		if email == "" {
			continue
		}
		if !utils.ValidateEmail(email) {
			log.Printf("Skipping invalid email %q", email)
			continue
		}

		var existing models.User
		err := config.DB.Where("email = ?", email).First(&existing).Error
		if err == nil {
			log.Printf("SuperAdmin %s: already registered (use reset password to change)", email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check %s: %v", email, err)
		}

		password, err := utils.GeneratePassword(12)
		if err != nil {
			log.Fatalf("Failed to generate password: %v", err)
		}
		hashed, err := services.HashPassword(password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		now := time.Now()
		user := models.User{
			FirstName: "Super",
			LastName:  strings.SplitN(email, "@", 2)[0],
			Email:     email,
			Password:  hashed,
			Role:      models.RoleSuperAdmin,
			Status:    models.StatusActive,
			CreateAt:  &now,
			UpdateAt:  &now,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create %s: %v", email, err)
		}

		log.Printf("SuperAdmin %s: %s", email, password)
		seeded++
	}

	log.Printf("SuperAdmin registration completed (%d created)", seeded)
}
