package models

import (
	"time"
)

// CheckinSession is a time-boxed grant for one reservation's document
// uploads. ExpiresAt and ExpectedUploads never change after creation; the
// row itself is never mutated or deleted. Expiry is decided by comparing
// ExpiresAt against the clock at read time, so stale rows are inert.
type CheckinSession struct {
	ID              string    `json:"id" gorm:"primaryKey;size:64"`
	ReservationID   string    `json:"reservationId" gorm:"size:200;not null;index"`
	ExpectedUploads int       `json:"expectedUploads" gorm:"not null"`
	ExpiresAt       time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UploadBasePath is the object-store namespace reserved for this session.
// Every accepted upload path must start with it; it doubles as the
// authorization boundary for the upload credential.
func (s *CheckinSession) UploadBasePath() string {
	return "checkins/" + s.ID + "/"
}
