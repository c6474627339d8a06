package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"horizon/internal/api"
	"horizon/internal/config"
	"horizon/internal/history"
	"horizon/internal/model"
	"horizon/internal/twin"
	"horizon/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (defaults apply when empty)")
	addr := flag.String("addr", "", "listen address, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	seed, err := loadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}

	t := twin.New(seed, twin.Config{
		TariffPerKWh:     cfg.TariffPerKWh,
		EmissionKgPerKWh: cfg.EmissionFactorKgPerKWh,
		MaxStepSeconds:   cfg.MaxStepSeconds,
	})
	log.Printf("Digital twin initialized: %s, %d rooms, %d devices, comfort band %.1f-%.1f°C",
		seed.HomeName, len(seed.Rooms), len(seed.Devices),
		seed.Preferences.ComfortMinC, seed.Preferences.ComfortMaxC)

	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)
	hist := history.New(cfg.HistoryPerDevice)

	handler := api.NewHandler(t, hist, bridge)
	router := api.NewRouter(handler)
	router.Handle("/ws", ws.NewHandler(hub, t))

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatal(err)
	}
}

// loadSeed reads the initialization payload the twin is built from.
func loadSeed(path string) (model.SeedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.SeedData{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var seed model.SeedData
	if err := json.NewDecoder(f).Decode(&seed); err != nil {
		return model.SeedData{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(seed.Rooms) == 0 {
		return model.SeedData{}, fmt.Errorf("seed %s contains no rooms", path)
	}
	return seed, nil
}
