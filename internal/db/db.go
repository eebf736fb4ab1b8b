package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"diamondadmin/internal/config"
	"diamondadmin/internal/models"
	"diamondadmin/internal/store"
)

// Connect opens the database behind the DSN: postgres for URL-style
// DSNs, sqlite otherwise (file path or file: URI).
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN is empty")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	if isPostgres(dsn) {
		var db *gorm.DB
		var err error
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				return db, nil
			}
			log.Println("retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	return gorm.Open(sqlite.Open(dsn), cfg)
}

// ConnectAndMigrate opens the database and brings the schema up. With
// MIGRATIONS=1 and a postgres DSN the SQL files under ./migrations run
// via golang-migrate; otherwise AutoMigrate keeps the dev loop simple.
// DB_SEED=1 loads the mock fixtures into empty tables.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if config.ParseBool("MIGRATIONS", false) && isPostgres(dsn) {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range []any{&models.Product{}, &models.Customer{}} {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	for _, table := range []string{"products", "customers"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if config.ParseBool("DB_SEED", false) {
		Seed(db)
	}
	return db, nil
}

// Seed loads the fixture inventory and accounts into empty tables. It is
// idempotent: a non-empty table is left alone.
func Seed(db *gorm.DB) {
	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		fixtures := store.ProductFixtures()
		// Insert oldest-first so created_at ordering matches fixture order.
		for i := len(fixtures) - 1; i >= 0; i-- {
			if err := db.Create(&fixtures[i]).Error; err != nil {
				log.Printf("seed product %s: %v", fixtures[i].ID, err)
			}
		}
	}
	var customerCount int64
	db.Model(&models.Customer{}).Count(&customerCount)
	if customerCount == 0 {
		fixtures := store.CustomerFixtures()
		for i := len(fixtures) - 1; i >= 0; i-- {
			if err := db.Create(&fixtures[i]).Error; err != nil {
				log.Printf("seed customer %s: %v", fixtures[i].ID, err)
			}
		}
	}
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
