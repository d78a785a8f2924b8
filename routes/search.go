package routes

import (
	"strings"

	"github.com/kataras/iris/v12"

	"github.com/UnitedVilla/checkin-system/models"
	"github.com/UnitedVilla/checkin-system/storage"
	"github.com/UnitedVilla/checkin-system/utils"
)

const maxSearchResults = 10

type SearchInput struct {
	Date       string `json:"date" validate:"required,min=10"`
	Name       string `json:"name"`
	GuestName  string `json:"guestName"`
	GuestCount int    `json:"guestCount" validate:"omitempty,min=1"`
}

type searchMatch struct {
	ReservationID string `json:"reservationId"`
	Date          string `json:"date"`
	RoomNumber    string `json:"roomNumber"`
	GuestName     string `json:"guestName"`
	GuestCount    int    `json:"guestCount"`
	Status        string `json:"status"`
}

// SearchReservations matches reservations by exact stay date and a guest
// name fragment. The date narrows the query; the name filter runs in memory
// against the stored search key.
func SearchReservations() iris.Handler {
	return func(ctx iris.Context) {
		var input SearchInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}
		name := input.Name
		if name == "" {
			name = input.GuestName
		}
		if name == "" {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_argument", "name required")
			return
		}

		repo := &storage.ReservationRepo{DB: storage.DB}
		rows, err := repo.ByDate(ctx.Request().Context(), utils.NormalizeDate(input.Date))
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, "internal_error", "search failed")
			return
		}

		ctx.JSON(iris.Map{"matches": matchReservations(rows, utils.NormalizeName(name))})
	}
}

// matchReservations filters a date's reservations by substring containment
// of the normalized name fragment within the stored search key, capped at
// maxSearchResults. A missing status reads as pending.
func matchReservations(rows []models.Reservation, fragment string) []searchMatch {
	matches := make([]searchMatch, 0, maxSearchResults)
	for _, r := range rows {
		if !strings.Contains(r.SearchKey, fragment) {
			continue
		}
		status := r.Status
		if status == "" {
			status = models.ReservationPending
		}
		matches = append(matches, searchMatch{
			ReservationID: r.ID,
			Date:          r.Date,
			RoomNumber:    r.RoomNumber,
			GuestName:     r.GuestName,
			GuestCount:    r.GuestCount,
			Status:        status,
		})
		if len(matches) == maxSearchResults {
			break
		}
	}
	return matches
}
