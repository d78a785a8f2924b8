package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/UnitedVilla/checkin-system/models"
)

// ReservationRepo is the gorm-backed reservation store.
type ReservationRepo struct {
	DB *gorm.DB
}

func (r *ReservationRepo) Get(ctx context.Context, id string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.DB.WithContext(ctx).First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CheckIn flips the reservation to checked_in under a row lock, so two
// completions racing for the same reservation serialize on the database
// rather than both reading the pending state. The write itself is
// idempotent: a repeat run lands on the same terminal state.
func (r *ReservationRepo) CheckIn(ctx context.Context, id string, uploadCount int, at time.Time) (*models.Reservation, error) {
	var reservation *models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Reservation
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		row.Status = models.ReservationCheckedIn
		row.UploadCount = uploadCount
		row.CheckedInAt = &at
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		reservation = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// reservationMergeColumns is the update set for a re-synced row. Check-in
// state (status, checked_in_at, upload_count) and created_at are excluded:
// re-ingesting a row must never un-check-in a guest.
var reservationMergeColumns = []string{
	"date", "room_number", "guest_name", "guest_count",
	"passkey", "search_key", "updated_at",
}

// Upsert merges a synced source row by its derived primary key.
func (r *ReservationRepo) Upsert(ctx context.Context, reservation *models.Reservation) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(reservationMergeColumns),
	}).Create(reservation).Error
}

// UpsertBatch merges a whole sync push in one transaction, so a mid-batch
// failure ingests nothing rather than a partial spreadsheet.
func (r *ReservationRepo) UpsertBatch(ctx context.Context, reservations []*models.Reservation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := &ReservationRepo{DB: tx}
		for _, reservation := range reservations {
			if err := repo.Upsert(ctx, reservation); err != nil {
				return err
			}
		}
		return nil
	})
}

// ByDate returns every reservation for an exact stay date. Name filtering
// happens in memory at the call site against the stored search key.
func (r *ReservationRepo) ByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	var rows []models.Reservation
	if err := r.DB.WithContext(ctx).Where("date = ?", date).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
