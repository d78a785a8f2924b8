package routes

import (
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/UnitedVilla/checkin-system/services"
	"github.com/UnitedVilla/checkin-system/storage"
	"github.com/UnitedVilla/checkin-system/utils"
)

type StartCheckinInput struct {
	ReservationID string `json:"reservationId" validate:"required"`
}

type CompleteUploadInput struct {
	SessionID     string   `json:"sessionId" validate:"required"`
	UploadedPaths []string `json:"uploadedPaths" validate:"required,min=1,dive,required"`
}

type SignUploadInput struct {
	SessionID string `json:"sessionId" validate:"required"`
	FileName  string `json:"fileName" validate:"required,max=128"`
}

// StartCheckin issues a check-in session for a matched reservation and
// returns the upload namespace plus the credential scoped to it.
func StartCheckin(svc *services.CheckinService) iris.Handler {
	return func(ctx iris.Context) {
		var input StartCheckinInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		result, err := svc.StartSession(ctx.Request().Context(), input.ReservationID)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		ctx.JSON(result)
	}
}

// CompleteUpload verifies the claimed uploads and, on success, reveals the
// room number and passkey. Safe to retry: verification is stateless against
// the same inputs and the status write is idempotent.
func CompleteUpload(svc *services.CheckinService) iris.Handler {
	return func(ctx iris.Context) {
		var input CompleteUploadInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		result, err := svc.CompleteSession(ctx.Request().Context(), input.SessionID, input.UploadedPaths)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		ctx.JSON(iris.Map{
			"ok":         true,
			"roomNumber": result.RoomNumber,
			"passkey":    result.Passkey,
		})
	}
}

// SignUploadParams hands a client the signed form parameters for one upload
// into its own session namespace. The route sits behind the session-token
// verifier; the token's subject must be the session being signed for, the
// session must still be live, and the file name must not escape the prefix.
func SignUploadParams(sessions services.SessionStore) iris.Handler {
	return func(ctx iris.Context) {
		var input SignUploadInput
		if err := ctx.ReadJSON(&input); err != nil {
			utils.HandleValidationErrors(err, ctx)
			return
		}

		claims := jwt.Get(ctx).(*utils.SessionToken)
		if claims.SessionID != input.SessionID {
			utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "credential not valid for this session")
			return
		}

		if strings.ContainsAny(input.FileName, "/\\") || strings.Contains(input.FileName, "..") {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_argument", "invalid file name")
			return
		}

		session, err := sessions.Get(ctx.Request().Context(), input.SessionID)
		if err != nil {
			utils.JSONError(ctx, iris.StatusInternalServerError, "internal_error", "session lookup failed")
			return
		}
		if session == nil {
			utils.JSONError(ctx, iris.StatusNotFound, "not_found", "session not found")
			return
		}
		if !session.ExpiresAt.After(time.Now()) {
			utils.JSONError(ctx, iris.StatusGone, "gone", "session expired")
			return
		}

		path := session.UploadBasePath() + input.FileName
		ctx.JSON(iris.Map{
			"path":   path,
			"params": storage.Objects.SignUpload(path),
		})
	}
}

func writeServiceError(ctx iris.Context, err error) {
	e, ok := services.AsError(err)
	if !ok {
		utils.JSONError(ctx, iris.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	switch e.Kind {
	case services.KindInsufficientUploads:
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"error":    string(e.Kind),
			"message":  e.Message,
			"required": e.Required,
			"found":    e.Found,
		})
	case services.KindNotFound:
		utils.JSONError(ctx, iris.StatusNotFound, string(e.Kind), e.Message)
	case services.KindConflict:
		utils.JSONError(ctx, iris.StatusConflict, string(e.Kind), e.Message)
	case services.KindGone:
		utils.JSONError(ctx, iris.StatusGone, string(e.Kind), e.Message)
	case services.KindUnauthorized:
		utils.JSONError(ctx, iris.StatusUnauthorized, string(e.Kind), e.Message)
	default:
		utils.JSONError(ctx, iris.StatusBadRequest, string(e.Kind), e.Message)
	}
}
