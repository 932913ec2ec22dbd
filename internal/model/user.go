package model

import "time"

// Role identifies what a user can do on the platform.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
	// RoleDeactivated is set by admins in place of deleting the row, so
	// historical sessions and reviews keep a valid owner.
	RoleDeactivated Role = "deactivated"
)

// User represents an account on the platform. The role is fixed at
// registration; only admin deactivation rewrites it.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:128;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;default:'student';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	StudentProfile *StudentProfile `json:"student_profile,omitempty" gorm:"foreignKey:UserID"`
	MentorProfile  *MentorProfile  `json:"mentor_profile,omitempty" gorm:"foreignKey:UserID"`
}

// IsStudent reports whether the user holds the student role.
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// IsMentor reports whether the user holds the mentor role.
func (u *User) IsMentor() bool { return u.Role == RoleMentor }

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
