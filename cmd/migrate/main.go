package main

import (
	"database/sql"
	"flag"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	sqlitestore "items-api/internal/store/sqlite"
)

func main() {
	var (
		dbPath  = flag.String("db", "./data/items.db", "Database file path")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Setup logger
	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithField("db_path", absDBPath).Info("Running migrations")

	db, err := sql.Open("sqlite3", absDBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	if err := sqlitestore.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Migration failed")
	}

	logger.Info("Migrations applied")
}
