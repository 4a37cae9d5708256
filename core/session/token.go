package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var nowFunc = time.Now // mockable

// Expiry reports the expiry claim embedded in a bearer token. The token is
// parsed without signature verification: the client cannot verify it and does
// not need to, it only wants to avoid presenting something the backend will
// certainly reject.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token carries an expiry claim in the past.
// Opaque (non-JWT) tokens are never reported expired; they go to the backend
// for the final say.
func Expired(token string) bool {
	exp, ok := Expiry(token)
	return ok && exp.Before(nowFunc())
}
