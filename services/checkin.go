package services

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/UnitedVilla/checkin-system/models"
)

const (
	// SessionTTL is the absolute lifetime of a check-in session. Expiry is
	// stored on the session row at issuance and compared against the clock
	// at completion time; nothing runs in the background.
	SessionTTL = 20 * time.Minute

	// UploadsPerGuest is the face photo plus identity document photo
	// expected from every guest on the reservation.
	UploadsPerGuest = 2

	// existenceCheckParallelism bounds the concurrent object-store lookups
	// during completion. The checks are independent reads; only the final
	// count matters.
	existenceCheckParallelism = 4
)

// ReservationStore is the reservation side of the document store.
type ReservationStore interface {
	// Get returns the reservation or nil when absent.
	Get(ctx context.Context, id string) (*models.Reservation, error)
	// CheckIn flips the reservation to checked_in, stamping the time and
	// the verified upload count. Returns nil when the reservation is gone.
	CheckIn(ctx context.Context, id string, uploadCount int, at time.Time) (*models.Reservation, error)
}

// SessionStore persists check-in sessions. Sessions are write-once.
type SessionStore interface {
	Create(ctx context.Context, session *models.CheckinSession) error
	// Get returns the session or nil when absent.
	Get(ctx context.Context, id string) (*models.CheckinSession, error)
}

// ObjectStore answers whether an uploaded object exists at a path.
type ObjectStore interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// CredentialIssuer mints the upload credential whose subject is the session
// identifier; an external access-control layer authorizes uploads under the
// session's path prefix against it.
type CredentialIssuer interface {
	Issue(sessionID string, ttl time.Duration) (string, error)
}

// Locker serializes completion attempts for one session across server
// instances. TryLock reports false when another attempt holds the lock.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// CheckinService owns the session lifecycle: issue, verify uploads, consume.
// All expected failures come back as *Error; anything else is a store fault.
type CheckinService struct {
	Reservations ReservationStore
	Sessions     SessionStore
	Objects      ObjectStore
	Credentials  CredentialIssuer
	Locks        Locker           // optional
	Now          func() time.Time // test clock, defaults to time.Now
}

type StartResult struct {
	SessionID       string `json:"sessionId"`
	ExpectedUploads int    `json:"expectedUploads"`
	UploadBasePath  string `json:"uploadBasePath"`
	Credential      string `json:"customToken"`
}

type CompleteResult struct {
	RoomNumber string `json:"roomNumber"`
	Passkey    string `json:"passkey"`
}

func (s *CheckinService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ExpectedUploads derives the verification threshold from the guest count.
// A zero or negative count (bad source data) still requires one upload.
func ExpectedUploads(guestCount int) int {
	n := guestCount * UploadsPerGuest
	if n < 1 {
		n = 1
	}
	return n
}

// StartSession issues a fresh session for a pending reservation. Multiple
// concurrent sessions for one reservation are allowed; completion is what
// consumes the reservation.
func (s *CheckinService) StartSession(ctx context.Context, reservationID string) (*StartResult, error) {
	reservation, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errNotFound("reservation_not_found")
	}
	if reservation.Status == models.ReservationCheckedIn {
		return nil, &Error{Kind: KindConflict, Message: "already_checked_in"}
	}

	session := &models.CheckinSession{
		ID:              uuid.NewString(),
		ReservationID:   reservation.ID,
		ExpectedUploads: ExpectedUploads(reservation.GuestCount),
		ExpiresAt:       s.now().Add(SessionTTL),
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	credential, err := s.Credentials.Issue(session.ID, SessionTTL)
	if err != nil {
		return nil, err
	}

	return &StartResult{
		SessionID:       session.ID,
		ExpectedUploads: session.ExpectedUploads,
		UploadBasePath:  session.UploadBasePath(),
		Credential:      credential,
	}, nil
}

// CompleteSession verifies the claimed uploads and, when enough of them
// exist, consumes the session by flipping the reservation to checked_in and
// releasing the room passkey. Re-running after success re-verifies and
// re-writes the same terminal state, so retries are safe.
func (s *CheckinService) CompleteSession(ctx context.Context, sessionID string, uploadedPaths []string) (*CompleteResult, error) {
	if len(uploadedPaths) == 0 {
		return nil, errInvalid("uploadedPaths must not be empty")
	}

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errNotFound("session_not_found")
	}

	// Expiry comes from the stored absolute timestamp only.
	if !session.ExpiresAt.After(s.now()) {
		return nil, &Error{Kind: KindGone, Message: "session_expired"}
	}

	// Namespace check before any store access: a caller can only claim
	// uploads under its own session prefix.
	prefix := session.UploadBasePath()
	for _, p := range uploadedPaths {
		if !strings.HasPrefix(p, prefix) {
			return nil, errInvalid("invalid_paths")
		}
	}

	found, err := s.countExisting(ctx, uploadedPaths)
	if err != nil {
		return nil, err
	}
	if found < session.ExpectedUploads {
		return nil, &Error{
			Kind:     KindInsufficientUploads,
			Message:  "insufficient_uploads",
			Required: session.ExpectedUploads,
			Found:    found,
		}
	}

	if s.Locks != nil {
		release, acquired, err := s.Locks.TryLock(ctx, "checkin:complete:"+session.ID, 30*time.Second)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return nil, &Error{Kind: KindConflict, Message: "completion_in_progress"}
		}
		defer release()
	}

	reservation, err := s.Reservations.CheckIn(ctx, session.ReservationID, found, s.now())
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		// Reservation deleted after the session was issued.
		return nil, errNotFound("reservation_not_found")
	}

	return &CompleteResult{
		RoomNumber: reservation.RoomNumber,
		Passkey:    reservation.Passkey,
	}, nil
}

// countExisting checks every distinct path against the object store.
// Duplicates in the claimed list collapse to one lookup so a caller cannot
// repeat a single real object to reach the threshold. The lookups are
// independent reads and run with bounded parallelism; the aggregate count is
// compared against the threshold only after all of them finish.
func (s *CheckinService) countExisting(ctx context.Context, paths []string) (int, error) {
	seen := make(map[string]struct{}, len(paths))
	distinct := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		distinct = append(distinct, p)
	}

	var found int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(existenceCheckParallelism)
	for _, p := range distinct {
		p := p
		g.Go(func() error {
			ok, err := s.Objects.Exists(gctx, p)
			if err != nil {
				return err
			}
			if ok {
				atomic.AddInt64(&found, 1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(found), nil
}
