package utils

import (
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

// SessionToken is the claims payload of the upload credential. The subject
// is the check-in session identifier, which is what the upload-side access
// control authorizes against.
type SessionToken struct {
	SessionID string `json:"sessionID"`
}

// SessionTokenIssuer signs short-lived upload credentials scoped to one
// check-in session. The TTL matches the session's lifetime so the credential
// can never outlive the session it grants access to.
type SessionTokenIssuer struct {
	Secret string
}

func (i *SessionTokenIssuer) Issue(sessionID string, ttl time.Duration) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, i.Secret, ttl)

	claims := SessionToken{SessionID: sessionID}

	token, err := signer.Sign(claims, jwt.Claims{Subject: sessionID})
	if err != nil {
		return "", err
	}

	return string(token), nil
}
