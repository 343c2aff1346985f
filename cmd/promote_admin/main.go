package main

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
)

// Operator tool: flips the admin flag for the account with the given email.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: promote_admin <email>")
	}
	email := os.Args[1]

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=chatapp port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("User with email %s not found: %v", email, err)
	}

	if err := db.Model(&user).Update("admin", true).Error; err != nil {
		log.Fatalf("Failed to update admin flag: %v", err)
	}

	fmt.Printf("Successfully promoted %s (%s) to admin.\n", user.Username, user.Email)
}
