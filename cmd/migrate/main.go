package main

import (
	"flag"

	"ecorewards/internal/config" // Custom import path (Config)
	"ecorewards/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration and optional demo seeding
func main() {
	seed := flag.Bool("seed", false, "seed demo products, bins, and users after migrating")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration

	gormDB, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	db.Migrate(gormDB)

	if *seed || cfg.SeedDemo {
		if err := db.Seed(gormDB); err != nil {
			logrus.Fatalf("seed failed: %v", err)
		}
	}
}
