package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/duwuzhou/article-cms/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the postgres connection and sizes the underlying pool. The
// pool queues callers when every connection is busy; each request's context
// deadline bounds how long it waits.
func InitDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "articles_db"),
		envOr("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := SetupSchema(db); err != nil {
		log.Fatal("Failed to set up schema: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database handle: ", err)
	}
	sqlDB.SetMaxOpenConns(envIntOr("DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(envIntOr("DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(time.Duration(envIntOr("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute)

	if os.Getenv("DB_AUTO_MIGRATE") == "true" {
		if err := db.AutoMigrate(&models.Tag{}, &models.Article{}); err != nil {
			log.Fatal("Failed to migrate schema: ", err)
		}
	}

	return db
}

// SetupSchema registers the explicit join model so association reads and the
// per-row association deletes in the repositories target the same table.
func SetupSchema(db *gorm.DB) error {
	return db.SetupJoinTable(&models.Article{}, "Tags", &models.ArticleTag{})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
