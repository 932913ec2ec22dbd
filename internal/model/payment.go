package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a session payment.
//
// Transitions: completed -> refunded. refunded is terminal.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records the student's payment for an accepted session, priced at
// the mentor's hourly rate. At most one payment exists per session request.
type Payment struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	SessionRequestID uint            `json:"session_request_id" gorm:"uniqueIndex;not null"`
	StudentID        uint            `json:"student_id" gorm:"not null;index"`
	MentorID         uint            `json:"mentor_id" gorm:"not null;index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency         string          `json:"currency" gorm:"size:3;not null;default:'INR'"`
	Method           string          `json:"method" gorm:"size:64"` // card, netbanking, upi
	Status           PaymentStatus   `json:"status" gorm:"size:32;not null;default:'completed';index"`
	CreatedAt        time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relations
	SessionRequest SessionRequest `json:"-" gorm:"foreignKey:SessionRequestID"`
	Student        User           `json:"-" gorm:"foreignKey:StudentID"`
	Mentor         User           `json:"-" gorm:"foreignKey:MentorID"`
}

// IsParticipant reports whether userID is the paying student or the mentor.
func (p *Payment) IsParticipant(userID uint) bool {
	return p.StudentID == userID || p.MentorID == userID
}
