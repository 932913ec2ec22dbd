package model

import "time"

// Review is a student's rating of a completed session. At most one review
// exists per session request; the unique index backs the service-level check.
type Review struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	SessionRequestID uint      `json:"session_request_id" gorm:"uniqueIndex;not null"`
	StudentID        uint      `json:"student_id" gorm:"not null;index"`
	MentorID         uint      `json:"mentor_id" gorm:"not null;index"`
	Rating           int       `json:"rating" gorm:"not null"`
	Comment          string    `json:"comment" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"`

	// Relations
	SessionRequest SessionRequest `json:"-" gorm:"foreignKey:SessionRequestID"`
}
