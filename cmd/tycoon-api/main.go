package main

import (
	"flag"
	"fmt"

	"etl-tycoon/internal/api"
	"etl-tycoon/internal/api/handler"
	"etl-tycoon/internal/engine"
	"etl-tycoon/internal/level"
	"etl-tycoon/internal/store"
	"etl-tycoon/pkg/router"
)

// @title ETL Tycoon API
// @version 1.0
// @description Pipeline validation, simulation and scoring service for the ETL Builder Tycoon game.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	levelsDir := flag.String("levels", "levels", "directory of level YAML files")
	flag.Parse()

	levels, err := level.LoadDir(*levelsDir)
	if err != nil {
		fmt.Printf("⚠️ No levels loaded (%v); level endpoints will be empty\n", err)
	} else {
		fmt.Printf("🎮 Loaded %d levels from %s\n", len(levels), *levelsDir)
	}

	handler.Setup(store.NewSessionStore(), engine.New(), levels)

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(*addr)
}
