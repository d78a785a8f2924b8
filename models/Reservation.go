package models

import (
	"time"
)

const (
	ReservationPending   = "pending"
	ReservationCheckedIn = "checked_in"
)

// Reservation is a booked stay. The primary key is derived from
// (date, room, normalized guest name) so re-ingesting the same source row
// upserts instead of duplicating. Rows are only ever written by the sync
// endpoint and flipped to checked_in once by a completed session.
type Reservation struct {
	ID          string     `json:"id" gorm:"primaryKey;size:200"`
	Date        string     `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	RoomNumber  string     `json:"roomNumber" gorm:"size:50;not null"`
	GuestName   string     `json:"guestName" gorm:"size:256;not null"`
	GuestCount  int        `json:"guestCount" gorm:"not null"`
	Passkey     string     `json:"-" gorm:"size:128;not null"`
	Status      string     `json:"status" gorm:"size:20;default:'pending';index"` // pending, checked_in
	SearchKey   string     `json:"-" gorm:"size:256;index"`
	UploadCount int        `json:"uploadCount"`
	CheckedInAt *time.Time `json:"checkedInAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
