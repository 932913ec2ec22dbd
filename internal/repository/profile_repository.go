package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorconnect/internal/model"
)

// MentorSearchFilter narrows a mentor directory search. AfterID is a keyset
// cursor: only profiles with a larger id are returned, so pages are stable
// and the sequence is restartable from any cursor.
type MentorSearchFilter struct {
	Query         string
	MinExperience int
	AfterID       uint
	Limit         int
}

// ProfileRepository defines persistence for student and mentor profiles.
type ProfileRepository interface {
	CreateStudentProfile(ctx context.Context, profile *model.StudentProfile) error
	CreateMentorProfile(ctx context.Context, profile *model.MentorProfile) error
	FindStudentByUserID(ctx context.Context, userID uint) (*model.StudentProfile, error)
	FindMentorByUserID(ctx context.Context, userID uint) (*model.MentorProfile, error)
	UpdateStudentProfile(ctx context.Context, profile *model.StudentProfile) error
	UpdateMentorProfile(ctx context.Context, profile *model.MentorProfile) error
	SearchMentors(ctx context.Context, filter MentorSearchFilter) ([]model.MentorProfile, error)
	ReplaceAvailability(ctx context.Context, mentorProfileID uint, slots []model.Availability) error
	ListAvailability(ctx context.Context, mentorProfileID uint) ([]model.Availability, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateStudentProfile(ctx context.Context, profile *model.StudentProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) CreateMentorProfile(ctx context.Context, profile *model.MentorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindStudentByUserID(ctx context.Context, userID uint) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindMentorByUserID(ctx context.Context, userID uint) (*model.MentorProfile, error) {
	var profile model.MentorProfile
	if err := r.db.WithContext(ctx).Preload("Availabilities").
		Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateStudentProfile(ctx context.Context, profile *model.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) UpdateMentorProfile(ctx context.Context, profile *model.MentorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// SearchMentors matches the query against mentor name, title, and skills.
// Only profiles whose user still holds the mentor role are returned.
func (r *profileRepository) SearchMentors(ctx context.Context, filter MentorSearchFilter) ([]model.MentorProfile, error) {
	q := r.db.WithContext(ctx).Model(&model.MentorProfile{}).
		Joins("JOIN users ON users.id = mentor_profiles.user_id").
		Where("users.role = ?", model.RoleMentor)

	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("users.name LIKE ? OR mentor_profiles.skills LIKE ? OR mentor_profiles.title LIKE ?", like, like, like)
	}
	if filter.MinExperience > 0 {
		q = q.Where("mentor_profiles.years_of_experience >= ?", filter.MinExperience)
	}
	if filter.AfterID > 0 {
		q = q.Where("mentor_profiles.id > ?", filter.AfterID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var profiles []model.MentorProfile
	if err := q.Order("mentor_profiles.id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ReplaceAvailability swaps the mentor's slots in one transaction.
func (r *profileRepository) ReplaceAvailability(ctx context.Context, mentorProfileID uint, slots []model.Availability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mentor_profile_id = ?", mentorProfileID).
			Delete(&model.Availability{}).Error; err != nil {
			return err
		}
		for i := range slots {
			slots[i].ID = 0
			slots[i].MentorProfileID = mentorProfileID
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func (r *profileRepository) ListAvailability(ctx context.Context, mentorProfileID uint) ([]model.Availability, error) {
	var slots []model.Availability
	if err := r.db.WithContext(ctx).
		Where("mentor_profile_id = ?", mentorProfileID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}
