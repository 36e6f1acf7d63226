package main

import (
	"flag"
	"log"

	"github.com/justinharry4/qz-trivia-api/internal/config"
	"github.com/justinharry4/qz-trivia-api/internal/database"
	"github.com/justinharry4/qz-trivia-api/internal/opentdb"
	"github.com/justinharry4/qz-trivia-api/internal/seeder"
)

func main() {
	maxQuestions := flag.Int("max-questions", 50, "maximum number of questions fetched per category")
	clear := flag.Bool("clear", false, "delete existing quiz data before seeding")
	flag.Parse()

	cfg := config.Load()
	db := database.Connect(cfg)
	database.AutoMigrate(db)

	// One client per run: it carries the run's session token and rate-limit
	// delay. Seeding must not run concurrently from multiple workers.
	client := opentdb.NewClient(nil)
	s := seeder.New(db, client)

	if *clear {
		if err := s.Clear(); err != nil {
			log.Fatalf("failed to clear quiz data: %v", err)
		}
	}

	if err := s.Run(*maxQuestions); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
}
