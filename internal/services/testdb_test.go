package services

import (
	"path/filepath"
	"testing"

	"github.com/UttkarrshhPal/questa-quiz/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{Email: email, Name: "Test User", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func sampleQuizInput() QuizInput {
	return QuizInput{
		Title: "Developer Survey",
		Questions: []QuestionInput{
			{Text: "Fav language?", Type: models.QuestionTypeSingleChoice, Options: []string{"JS", "Go"}},
			{Text: "Experience?", Type: models.QuestionTypeShortText},
		},
	}
}
