package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/database"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/models"
	"github.com/CiurtinAndrei/ChatApp-backend/internal/services"
	"github.com/CiurtinAndrei/ChatApp-backend/pkg/logger"
)

// SetupTestDB initializes an in-memory SQLite DB for testing, with foreign
// keys enforced so the suite sees the same constraint failures the
// production migration produces. Tables are dropped first so every test
// starts clean.
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=on"), &gorm.Config{})
	database.DB = db

	// Referencing tables before referenced ones; users holds the picture
	// foreign key into media, so it drops first.
	database.DB.Migrator().DropTable(
		"conversation_members",
		&models.Message{},
		&models.Conversation{},
		&models.Friend{},
		&models.User{},
		&models.Media{},
	)
	database.DB.AutoMigrate(
		&models.User{},
		&models.Media{},
		&models.Friend{},
		&models.Conversation{},
		&models.Message{},
	)

	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
		UploadDir: "uploads",
	}

	logger.Init("test")

	// No SMTP in tests.
	services.SendConfirmationEmail = func(email, token string) error { return nil }
}

func jsonRequest(method, url string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}
