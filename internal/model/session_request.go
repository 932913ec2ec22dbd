package model

import "time"

// SessionStatus represents the lifecycle state of a session request.
//
// Transitions: pending -> accepted | declined, accepted -> completed.
// declined and completed are terminal.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusAccepted  SessionStatus = "accepted"
	SessionStatusDeclined  SessionStatus = "declined"
	SessionStatusCompleted SessionStatus = "completed"
)

// SessionRequest is a student's proposal for a mentorship meeting. Only the
// referenced mentor may accept or decline it; either party may complete an
// accepted session.
type SessionRequest struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	StudentID   uint          `json:"student_id" gorm:"not null;index"`
	MentorID    uint          `json:"mentor_id" gorm:"not null;index"`
	Topic       string        `json:"topic" gorm:"size:256;not null"`
	Description string        `json:"description" gorm:"type:text"`
	ScheduledAt time.Time     `json:"scheduled_at" gorm:"index;not null"`
	Status      SessionStatus `json:"status" gorm:"size:32;not null;default:'pending';index"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Student User `json:"-" gorm:"foreignKey:StudentID"`
	Mentor  User `json:"-" gorm:"foreignKey:MentorID"`
}

// IsParticipant reports whether userID is the student or mentor on the request.
func (s *SessionRequest) IsParticipant(userID uint) bool {
	return s.StudentID == userID || s.MentorID == userID
}
