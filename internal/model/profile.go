package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentProfile holds the extended attributes of a student account.
// Created empty at registration and filled in by the student later.
type StudentProfile struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	AcademicYear string    `json:"academic_year" gorm:"size:64"`
	Course       string    `json:"course" gorm:"size:128"`
	Interests    string    `json:"interests" gorm:"type:text"`
	Goals        string    `json:"goals" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MentorProfile holds the extended attributes of a mentor account. Skills is
// a comma-separated list; the directory matches it with substring search.
type MentorProfile struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	UserID            uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Title             string          `json:"title" gorm:"size:128"`
	Skills            string          `json:"skills" gorm:"size:256;index"`
	YearsOfExperience int             `json:"years_of_experience"`
	HourlyRate        decimal.Decimal `json:"hourly_rate" gorm:"type:decimal(10,2)"`
	ProfilePic        string          `json:"profile_pic" gorm:"size:256"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relations
	Availabilities []Availability `json:"availabilities,omitempty" gorm:"foreignKey:MentorProfileID"`
}

// Availability is a weekly recurring slot on a mentor's calendar.
// DayOfWeek follows time.Weekday numbering starting at Sunday = 0.
type Availability struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	MentorProfileID uint   `json:"mentor_profile_id" gorm:"not null;index"`
	DayOfWeek       int    `json:"day_of_week" gorm:"not null"`
	StartTime       string `json:"start_time" gorm:"size:5;not null"` // HH:MM
	EndTime         string `json:"end_time" gorm:"size:5;not null"`   // HH:MM
}
