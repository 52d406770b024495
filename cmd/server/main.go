package main

import (
	"net/http"

	"shift-planner-backend/api"
	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.GetCached()
	log := logger.New(cfg.IsDevelopment())
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	store, err := database.New(database.Config{
		PostgresDSN: cfg.PostgresDSN,
		DataDir:     cfg.DataDir,
		Debug:       cfg.Debug,
	})
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer store.Close()

	router := api.NewRouter(cfg, store, log)
	addr := ":" + cfg.Port
	log.Info("server listening", zap.String("addr", addr), zap.String("environment", cfg.Environment))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
