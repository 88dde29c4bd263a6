// Package repository implements the PostgreSQL storage for the gym
// administration service: plan, trainer, member and attendance projections
// plus the transactional mutations (member registration, trainer assignment
// and attendance marking) that keep the related tables consistent.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the pgx driver for use with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage wraps the PostgreSQL connection pool and implements every
// read and write operation the service needs.
type Storage struct {
	DB *sql.DB
}

// New opens a connection pool to PostgreSQL and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies the schema has been migrated.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'memberships'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table memberships missing or query error: %w", err)
	}
	return nil
}
