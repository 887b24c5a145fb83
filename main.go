package main

import (
	"github.com/mYstoRi/medcontest/config"
	"github.com/mYstoRi/medcontest/engine"
	"github.com/mYstoRi/medcontest/routes"
	"github.com/mYstoRi/medcontest/sheets"
	"github.com/mYstoRi/medcontest/store"
	"github.com/mYstoRi/medcontest/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	st := store.NewRedisStore(utils.GetRedis())
	fetcher := sheets.NewFetcher(cfg.SheetMeditationURL, cfg.SheetPracticeURL, cfg.SheetClassURL, cfg.SheetFormURL)
	e := engine.NewEngine(st, fetcher)

	r := routes.SetupRouter(e)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
