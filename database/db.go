package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/muhammadMilon/FruitPanda-sub001/config"
	dbschema "github.com/muhammadMilon/FruitPanda-sub001/db"
)

// DB wraps the bun database handle.
type DB struct {
	*bun.DB
}

var instance *DB

// Connect establishes a connection to Postgres using centralized configuration
func Connect() (*DB, error) {
	logger := config.GetLogger()
	dbCfg := config.GetConfig().Database

	pgconn := pgdriver.NewConnector(
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", dbCfg.Host, dbCfg.Port)),
		pgdriver.WithUser(dbCfg.User),
		pgdriver.WithPassword(dbCfg.Password),
		pgdriver.WithDatabase(dbCfg.Name),
		pgdriver.WithInsecure(true),
		pgdriver.WithReadTimeout(dbCfg.ReadTimeout),
		pgdriver.WithWriteTimeout(dbCfg.WriteTimeout),
	)

	sqldb := sql.OpenDB(pgconn)
	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	bundb := bun.NewDB(sqldb, pgdialect.New())

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := bundb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully")

	return &DB{bundb}, nil
}

// Initialize sets up the global database instance and applies the embedded
// schema.
func Initialize() error {
	conn, err := Connect()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := conn.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	instance = conn
	return nil
}

// RunMigrations executes the embedded DDL schema. Statements are written to
// be idempotent (CREATE TABLE IF NOT EXISTS).
func (db *DB) RunMigrations(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, dbschema.Schema); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// GetInstance returns the global database instance
func GetInstance() *DB {
	if instance == nil {
		log.Fatal("Database instance is not initialized. Call Initialize() first.")
	}
	return instance
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
