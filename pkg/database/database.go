package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/civicline/repcall/pkg/domain"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client holds the database handle
type Client struct {
	DB *gorm.DB
}

// NewClient opens the database and applies migrations. Postgres URLs go
// through lib/pq; anything else is treated as a SQLite path (the original
// single-user deployment shape).
func NewClient(databaseURL string) (*Client, error) {
	var dialector gorm.Dialector

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		sqlDB, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed opening connection to postgres: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	} else {
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed applying migrations: %w", err)
	}

	log.Println("✅ Database connected and migrations applied")

	return &Client{DB: db}, nil
}

// Migrate creates or updates the schema for every domain entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Representative{},
		&domain.RepresentativePhone{},
		&domain.RepresentativeSuggestion{},
		&domain.RepresentativeSuggestionPhone{},
		&domain.CallScript{},
		&domain.CallLog{},
		&domain.ExportRecord{},
	)
}

// Close closes the database connection
func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks if the database is reachable
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
