package routes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/UnitedVilla/checkin-system/models"
	"github.com/UnitedVilla/checkin-system/storage"
	"github.com/UnitedVilla/checkin-system/utils"
)

// FlexCount accepts a JSON number or a numeric string. The spreadsheet
// source exports guest counts both ways depending on the column format.
type FlexCount int

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = FlexCount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("guestCount must be a number or numeric string")
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("guestCount must be a number or numeric string")
	}
	*c = FlexCount(n)
	return nil
}

type SyncRecordInput struct {
	Date       string    `json:"date" validate:"required,min=10"`
	RoomNumber string    `json:"roomNumber" validate:"required"`
	GuestName  string    `json:"guestName" validate:"required"`
	GuestCount FlexCount `json:"guestCount" validate:"required,min=1"`
	Passkey    string    `json:"passkey" validate:"required"`
}

type SyncInput struct {
	Records []SyncRecordInput `json:"records" validate:"required,min=1,dive"`
}

// SyncReservations upserts reservation rows pushed from the back-office
// spreadsheet export. The derived primary key makes re-runs merge instead
// of duplicate; check-in state survives re-ingestion.
func SyncReservations() iris.Handler {
	return func(ctx iris.Context) {
		var input SyncInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		reservations := make([]*models.Reservation, 0, len(input.Records))
		for _, rec := range input.Records {
			reservations = append(reservations, reservationFromSyncRecord(rec))
		}

		// One transaction for the whole push: a mid-batch failure ingests
		// nothing, and the retry re-merges cleanly.
		repo := &storage.ReservationRepo{DB: storage.DB}
		if err := repo.UpsertBatch(ctx.Request().Context(), reservations); err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, "internal_error", "sync failed")
			return
		}

		ctx.JSON(iris.Map{"ok": true, "count": len(input.Records)})
	}
}

// reservationFromSyncRecord maps one validated source row onto the stored
// reservation shape: normalized date, trimmed room, derived primary key and
// search key, status forced to pending for brand-new rows (the merge set
// leaves existing check-in state alone).
func reservationFromSyncRecord(rec SyncRecordInput) *models.Reservation {
	return &models.Reservation{
		ID:         utils.ReservationID(rec.Date, rec.RoomNumber, rec.GuestName),
		Date:       utils.NormalizeDate(rec.Date),
		RoomNumber: strings.TrimSpace(rec.RoomNumber),
		GuestName:  rec.GuestName,
		GuestCount: int(rec.GuestCount),
		Passkey:    rec.Passkey,
		Status:     models.ReservationPending,
		SearchKey:  utils.NormalizeName(rec.GuestName),
	}
}
