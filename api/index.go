package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/crewplan-api/pkg/config"
	"github.com/arnavshah/crewplan-api/pkg/database"
	"github.com/arnavshah/crewplan-api/pkg/events"
	"github.com/arnavshah/crewplan-api/pkg/handlers"
	"github.com/arnavshah/crewplan-api/pkg/logging"
	"github.com/arnavshah/crewplan-api/pkg/seed"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}

	data, err := seed.Load(cfg.SeedPath)
	if err != nil {
		log.Fatalf("could not load seed: %v", err)
	}
	// The database handle stays open for the life of the instance
	s, _, err := database.OpenStore(cfg, data, logger)
	if err != nil {
		log.Fatalf("could not open store: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r = handlers.New(s, events.NewLogPublisher(logger), logger).Router()
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
