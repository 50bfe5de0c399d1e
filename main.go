package main

import (
	"asset_circulation_engine/app"
	"asset_circulation_engine/routes"

	"go.uber.org/zap"
)

func main() {
	application := app.MustNew()
	defer application.Close()

	r := application.Router

	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	addr := ":" + application.Config.Port
	application.Log.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		application.Log.Fatal("server", zap.Error(err))
	}
}
