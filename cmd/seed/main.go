// Command main populates the database with demo data.
package main

import (
	"flag"
	"log"

	"kanban/internal/config"
	"kanban/internal/database"
	"kanban/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.BoardsPerUser, "boards", opts.BoardsPerUser, "boards per user")
	flag.IntVar(&opts.ListsPerBoard, "lists", opts.ListsPerBoard, "lists per board")
	flag.IntVar(&opts.CardsPerList, "cards", opts.CardsPerList, "cards per list")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
