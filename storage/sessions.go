package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/UnitedVilla/checkin-system/models"
)

// SessionRepo persists check-in sessions. Rows are write-once; expiry is
// enforced by the service comparing the stored timestamp, never by deletion.
type SessionRepo struct {
	DB *gorm.DB
}

func (r *SessionRepo) Create(ctx context.Context, session *models.CheckinSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*models.CheckinSession, error) {
	var session models.CheckinSession
	err := r.DB.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
