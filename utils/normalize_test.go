package utils

import (
	"testing"
)

func TestNormalizeNameEquivalence(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{"Taro  Yamada", "taro yamada"},
		{"ｔａｒｏ yamada", "Taro Yamada"},
		{"  jane\tdoe ", "Jane Doe"},
		{"ＪＡＮＥ　ＤＯＥ", "jane doe"}, // full-width letters and ideographic space
	}
	for _, c := range cases {
		if got, want := NormalizeName(c.a), NormalizeName(c.b); got != want {
			t.Errorf("NormalizeName(%q)=%q, NormalizeName(%q)=%q; want equal", c.a, got, c.b, want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("Taro  Yamada"); got != "taro yamada" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeName(""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024/3/5", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
		{"2024-3-5 14:00", "2024-03-05"},
		{"checkin 2024/12/31", "2024-12-31"},
		{"not a date", "not a date"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeDate(c.in); got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	// idempotent
	once := NormalizeDate("2024/3/5")
	if twice := NormalizeDate(once); twice != once {
		t.Errorf("not idempotent: %q -> %q", once, twice)
	}
}

func TestReservationID(t *testing.T) {
	id := ReservationID("2024/5/1", " 101 ", "Jane  Doe")
	if id != "2024-05-01_101_jane-doe" {
		t.Errorf("got %q", id)
	}
	// same source row, cosmetically different -> same id
	other := ReservationID("2024-05-01", "101", "ｊａｎｅ doe")
	if other != id {
		t.Errorf("ids differ: %q vs %q", id, other)
	}
}

func TestReservationIDBounded(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'a'
	}
	id := ReservationID("2024-05-01", "101", string(long))
	if len(id) > 200 {
		t.Errorf("id length %d exceeds 200", len(id))
	}
}
