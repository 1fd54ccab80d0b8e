package main

import (
	"fmt"
	"log"
	"net/http"

	"axiom/internal/calendar"
	"axiom/internal/config"
	"axiom/internal/game"
	"axiom/internal/server"
	"axiom/internal/storage"
	"axiom/internal/storage/sqlite"
)

func main() {
	logger := log.Default()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal(err)
	}

	balance, err := config.LoadBalance(cfg.Preset, cfg.BalanceFile)
	if err != nil {
		logger.Fatal(err)
	}

	var store storage.Store
	if cfg.Demo {
		store = storage.NewMemoryStore()
		logger.Println("demo mode: state is in-memory only")
	} else {
		db, err := sqlite.Open(cfg.DataPath)
		if err != nil {
			logger.Fatal(err)
		}
		defer db.Close()
		store = db
	}

	engine := game.New(store, calendar.RealClock{}, balance, logger)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux, &server.App{Engine: engine, Log: logger})

	fmt.Printf("axiom listening on %s\n", cfg.Addr)
	logger.Fatal(http.ListenAndServe(cfg.Addr, mux))
}
