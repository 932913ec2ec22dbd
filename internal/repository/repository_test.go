package repository

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"mentorconnect/internal/db"
	"mentorconnect/internal/model"
)

// newTestDB opens a throwaway SQLite database with the production
// configuration and migrates the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.MentorProfile{},
		&model.Availability{},
		&model.SessionRequest{},
		&model.Message{},
		&model.Review{},
		&model.Notification{},
		&model.Payment{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gormDB
}
