package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"

	"github.com/UnitedVilla/checkin-system/utils"
)

func TestFlexCount(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{`2`, 2, false},
		{`"3"`, 3, false},
		{`" 4 "`, 4, false},
		{`"two"`, 0, true},
		{`true`, 0, true},
	}
	for _, c := range cases {
		var got FlexCount
		err := json.Unmarshal([]byte(c.in), &got)
		if c.wantErr {
			if err == nil {
				t.Errorf("FlexCount(%s): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("FlexCount(%s): %v", c.in, err)
		} else if int(got) != c.want {
			t.Errorf("FlexCount(%s) = %d, want %d", c.in, got, c.want)
		}
	}
}

// buildSyncApp wires the admin party the way main does, with a fixed key.
func buildSyncApp(adminKey string) *iris.Application {
	app := iris.New()
	app.Validator = validator.New()
	admin := app.Party("/api/admin", utils.AdminKeyMiddleware(adminKey))
	admin.Post("/syncReservations", SyncReservations())
	app.Build()
	return app
}

func postSync(app *iris.Application, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/syncReservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func TestSyncRequiresAdminKey(t *testing.T) {
	app := buildSyncApp("secret")

	if resp := postSync(app, "", `{"records":[]}`); resp.Code != http.StatusUnauthorized {
		t.Errorf("missing key: expected 401, got %d", resp.Code)
	}
	if resp := postSync(app, "wrong", `{"records":[]}`); resp.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: expected 401, got %d", resp.Code)
	}
}

func TestSyncDisabledWithoutConfiguredKey(t *testing.T) {
	app := buildSyncApp("")

	// Even a matching empty header is rejected when no key is configured.
	if resp := postSync(app, "", `{"records":[]}`); resp.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with unset key, got %d", resp.Code)
	}
}

func TestSyncRejectsMalformedRecords(t *testing.T) {
	app := buildSyncApp("secret")

	// Empty record list fails schema validation before any store access.
	if resp := postSync(app, "secret", `{"records":[]}`); resp.Code != http.StatusBadRequest {
		t.Errorf("empty records: expected 400, got %d", resp.Code)
	}
	// Missing passkey on a record.
	body := `{"records":[{"date":"2024-05-01","roomNumber":"101","guestName":"Jane Doe","guestCount":2}]}`
	if resp := postSync(app, "secret", body); resp.Code != http.StatusBadRequest {
		t.Errorf("missing passkey: expected 400, got %d", resp.Code)
	}
}

func TestReservationFromSyncRecord(t *testing.T) {
	rec := SyncRecordInput{
		Date:       "2024/5/1",
		RoomNumber: " 101 ",
		GuestName:  "Jane  Doe",
		GuestCount: 2,
		Passkey:    "AX12",
	}
	r := reservationFromSyncRecord(rec)

	if r.ID != "2024-05-01_101_jane-doe" {
		t.Errorf("ID = %q", r.ID)
	}
	if r.Date != "2024-05-01" {
		t.Errorf("Date = %q", r.Date)
	}
	if r.RoomNumber != "101" {
		t.Errorf("RoomNumber = %q", r.RoomNumber)
	}
	if r.SearchKey != "jane doe" {
		t.Errorf("SearchKey = %q", r.SearchKey)
	}
	if r.Status != "pending" || r.GuestCount != 2 || r.Passkey != "AX12" {
		t.Errorf("row = %+v", r)
	}

	// A cosmetically different re-push of the same row derives the same key.
	again := reservationFromSyncRecord(SyncRecordInput{
		Date: "2024-05-01", RoomNumber: "101", GuestName: "ｊａｎｅ doe",
		GuestCount: 2, Passkey: "AX12",
	})
	if again.ID != r.ID {
		t.Errorf("ids differ: %q vs %q", r.ID, again.ID)
	}
}

func TestSearchValidation(t *testing.T) {
	app := iris.New()
	app.Validator = validator.New()
	app.Post("/api/searchReservation", SearchReservations())
	app.Build()

	req := httptest.NewRequest(http.MethodPost, "/api/searchReservation", strings.NewReader(`{"date":"2024-05-01"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("name missing: expected 400, got %d", resp.Code)
	}
}
