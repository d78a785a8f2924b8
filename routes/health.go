package routes

import (
	"time"

	"github.com/kataras/iris/v12"
)

func Healthz(ctx iris.Context) {
	ctx.JSON(iris.Map{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
}
