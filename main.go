package main

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"

	"github.com/UnitedVilla/checkin-system/config"
	"github.com/UnitedVilla/checkin-system/routes"
	"github.com/UnitedVilla/checkin-system/services"
	"github.com/UnitedVilla/checkin-system/storage"
	"github.com/UnitedVilla/checkin-system/utils"
)

func main() {
	cfg := config.Load()
	storage.InitializeDB(cfg.DatabaseDSN)
	storage.InitializeRedis(cfg.RedisURL)
	storage.InitializeObjects(cfg.ObjectStore)

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(corsMiddleware(cfg.AllowedOrigins))
	app.Use(iris.Compression)

	sessionTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.SessionTokenSecret))
	sessionVerifierMiddleware := sessionTokenVerifier.Verify(func() interface{} {
		return new(utils.SessionToken)
	})

	checkin := &services.CheckinService{
		Reservations: &storage.ReservationRepo{DB: storage.DB},
		Sessions:     &storage.SessionRepo{DB: storage.DB},
		Objects:      storage.Objects,
		Credentials:  &utils.SessionTokenIssuer{Secret: cfg.SessionTokenSecret},
		Locks:        &storage.RedisLocker{Client: storage.Redis},
	}

	api := app.Party("/api")
	{
		api.Get("/healthz", routes.Healthz)
		api.Post("/searchReservation", routes.SearchReservations())
		api.Post("/startCheckin", routes.StartCheckin(checkin))
		api.Post("/signUpload", sessionVerifierMiddleware,
			routes.SignUploadParams(&storage.SessionRepo{DB: storage.DB}))
		api.Post("/uploadPhotos", routes.CompleteUpload(checkin))

		admin := api.Party("/admin", utils.AdminKeyMiddleware(cfg.AdminKey))
		{
			admin.Post("/syncReservations", routes.SyncReservations())
		}
	}

	log.Fatal(app.Listen(cfg.ListenAddr))
}

// corsMiddleware allows configured origins only: exact matches plus
// "*.suffix" wildcard rules. An empty list allows everything, which keeps
// local development and curl working without extra setup.
func corsMiddleware(allowedOrigins []string) iris.Handler {
	return func(ctx iris.Context) {
		origin := ctx.GetHeader("Origin")
		if origin != "" && isAllowedOrigin(origin, allowedOrigins) {
			ctx.Header("Access-Control-Allow-Origin", origin)
		}
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Admin-Key")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		ctx.Header("Access-Control-Max-Age", "600")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

func isAllowedOrigin(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	if slices.Contains(allowed, origin) {
		return true
	}
	for _, rule := range allowed {
		if strings.HasPrefix(rule, "*.") && strings.HasSuffix(origin, rule[1:]) {
			return true
		}
	}
	return false
}
