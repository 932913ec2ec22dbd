package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mentorconnect/internal/config"
	"mentorconnect/internal/db"
	"mentorconnect/internal/model"
)

// Seeds the demo accounts (admin / mentor / student, password "password123")
// plus a completed session with its payment, a review, and a short message
// thread, so a
// fresh install has something to look at. Safe to run twice: existing emails
// are left alone.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("database init: %v", err)
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
		log.Fatalf("auto-migrate: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	admin := seedUser(gormDB, &model.User{
		Name:         "Admin",
		Email:        "admin@mentorconnect.local",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	})
	mentor := seedUser(gormDB, &model.User{
		Name:         "Maya Mentor",
		Email:        "mentor@mentorconnect.local",
		PasswordHash: string(hash),
		Role:         model.RoleMentor,
	})
	student := seedUser(gormDB, &model.User{
		Name:         "Sam Student",
		Email:        "student@mentorconnect.local",
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	})
	_ = admin

	mentorProfile := &model.MentorProfile{
		UserID:            mentor.ID,
		Title:             "Senior Backend Engineer",
		Skills:            "Go, SQL, System Design",
		YearsOfExperience: 8,
		HourlyRate:        decimal.NewFromInt(40),
	}
	if err := firstOrCreate(gormDB, mentorProfile, "user_id = ?", mentor.ID); err != nil {
		log.Fatalf("seed mentor profile: %v", err)
	}

	studentProfile := &model.StudentProfile{
		UserID:       student.ID,
		AcademicYear: "3rd year",
		Course:       "Computer Science",
		Interests:    "backend development, databases",
		Goals:        "land a backend internship",
	}
	if err := firstOrCreate(gormDB, studentProfile, "user_id = ?", student.ID); err != nil {
		log.Fatalf("seed student profile: %v", err)
	}

	var slotCount int64
	gormDB.Model(&model.Availability{}).Where("mentor_profile_id = ?", mentorProfile.ID).Count(&slotCount)
	if slotCount == 0 {
		slots := []model.Availability{
			{MentorProfileID: mentorProfile.ID, DayOfWeek: 1, StartTime: "18:00", EndTime: "20:00"},
			{MentorProfileID: mentorProfile.ID, DayOfWeek: 3, StartTime: "18:00", EndTime: "20:00"},
			{MentorProfileID: mentorProfile.ID, DayOfWeek: 6, StartTime: "10:00", EndTime: "12:00"},
		}
		if err := gormDB.Create(&slots).Error; err != nil {
			log.Fatalf("seed availability: %v", err)
		}
	}

	var sessionCount int64
	gormDB.Model(&model.SessionRequest{}).Where("student_id = ? AND mentor_id = ?", student.ID, mentor.ID).Count(&sessionCount)
	if sessionCount == 0 {
		session := &model.SessionRequest{
			StudentID:   student.ID,
			MentorID:    mentor.ID,
			Topic:       "Intro to system design",
			Description: "Walk through a URL shortener design",
			ScheduledAt: time.Now().AddDate(0, 0, -7),
			Status:      model.SessionStatusCompleted,
		}
		if err := gormDB.Create(session).Error; err != nil {
			log.Fatalf("seed session: %v", err)
		}

		payment := &model.Payment{
			SessionRequestID: session.ID,
			StudentID:        student.ID,
			MentorID:         mentor.ID,
			Amount:           mentorProfile.HourlyRate,
			Currency:         "INR",
			Method:           "upi",
			Status:           model.PaymentStatusCompleted,
		}
		if err := gormDB.Create(payment).Error; err != nil {
			log.Fatalf("seed payment: %v", err)
		}

		review := &model.Review{
			SessionRequestID: session.ID,
			StudentID:        student.ID,
			MentorID:         mentor.ID,
			Rating:           5,
			Comment:          "Clear explanations, great session",
		}
		if err := gormDB.Create(review).Error; err != nil {
			log.Fatalf("seed review: %v", err)
		}

		messages := []model.Message{
			{SenderID: student.ID, ReceiverID: mentor.ID, SessionRequestID: &session.ID, Content: "Hi! Looking forward to the session."},
			{SenderID: mentor.ID, ReceiverID: student.ID, SessionRequestID: &session.ID, Content: "Same here. Bring questions!"},
		}
		if err := gormDB.Create(&messages).Error; err != nil {
			log.Fatalf("seed messages: %v", err)
		}
	}

	log.Println("seed complete: admin/mentor/student accounts ready (password \"password123\")")
}

func seedUser(gormDB *gorm.DB, user *model.User) *model.User {
	var existing model.User
	err := gormDB.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return &existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("lookup %s: %v", user.Email, err)
	}
	if err := gormDB.Create(user).Error; err != nil {
		log.Fatalf("seed user %s: %v", user.Email, err)
	}
	return user
}

func firstOrCreate(gormDB *gorm.DB, value interface{}, query string, args ...interface{}) error {
	return gormDB.Where(query, args...).FirstOrCreate(value).Error
}
