package main

import (
	"flag"
	"log"

	"github.com/arnavshah/crewplan-api/pkg/config"
	"github.com/arnavshah/crewplan-api/pkg/database"
	"github.com/arnavshah/crewplan-api/pkg/seed"
)

func main() {
	reset := flag.Bool("reset", false, "empty every table before seeding")
	seedPath := flag.String("seed", "", "YAML seed file (defaults to SEED_PATH, then the built-in sample)")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.StoreDriver == config.DriverMemory {
		cfg.StoreDriver = config.DriverSQLite
	}

	path := *seedPath
	if path == "" {
		path = cfg.SeedPath
	}
	data, err := seed.Load(path)
	if err != nil {
		log.Fatalf("could not load seed: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	counts, err := database.Seed(db, data, *reset)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Printf("Seeded %s database: %d projects, %d staff, %d tasks, %d assignments",
		cfg.StoreDriver, counts.Projects, counts.Staff, counts.Tasks, counts.Assignments)
}
