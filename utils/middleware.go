package utils

import (
	"crypto/subtle"

	"github.com/kataras/iris/v12"
)

// AdminKeyMiddleware guards the reservation sync endpoint with the shared
// X-Admin-Key header. An empty configured key disables the endpoint
// entirely rather than letting every caller through.
func AdminKeyMiddleware(adminKey string) iris.Handler {
	return func(ctx iris.Context) {
		key := ctx.GetHeader("X-Admin-Key")
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
			JSONError(ctx, iris.StatusUnauthorized, "unauthorized", "admin key required")
			return
		}
		ctx.Next()
	}
}
