package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	datePattern    = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	nameKeyStrip   = regexp.MustCompile(`[^a-z0-9 ]`)
)

// NormalizeName builds the canonical comparison key for a guest name:
// lowercased, NFKC-folded (so full-width and half-width variants collapse),
// internal whitespace runs reduced to a single space, trimmed. The same
// function produces the stored search key at ingestion and the query token
// at search time.
func NormalizeName(raw string) string {
	s := norm.NFKC.String(strings.ToLower(raw))
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}

// NormalizeDate extracts the first date-shaped substring ("-" or "/"
// separated, 1-2 digit month and day) and zero-pads it to YYYY-MM-DD.
// Input without a recognizable date comes back unchanged, which downstream
// code treats as a degraded-but-usable value. Idempotent.
func NormalizeDate(raw string) string {
	m := datePattern.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
}

// NameKey reduces an already-normalized name to the identifier-safe form
// used inside reservation IDs: ascii letters/digits kept, everything else
// dropped, spaces turned into hyphens.
func NameKey(normalized string) string {
	s := nameKeyStrip.ReplaceAllString(normalized, "")
	return whitespaceRuns.ReplaceAllString(s, "-")
}

// ReservationID derives the deterministic primary key for a source row so
// repeated syncs of the same row merge instead of duplicating.
func ReservationID(date, roomNumber, guestName string) string {
	id := NormalizeDate(date) + "_" + strings.TrimSpace(roomNumber) + "_" + NameKey(NormalizeName(guestName))
	if len(id) > 200 {
		id = id[:200]
	}
	return id
}
