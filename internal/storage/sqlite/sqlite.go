// Package sqlite provides a SQLite-backed implementation of the storage.Store
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/planboard/internal/models"
	"github.com/mmynk/planboard/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates the
// parent directories, runs migrations and seeds the default plan data when
// the database is empty.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.seedDefaults(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed default plan: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// seedDefaults installs the default divisions and an equal allocation when
// the plan tables are empty, so a fresh install has something to chart.
func (s *SQLiteStore) seedDefaults(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM divisions").Scan(&count); err != nil {
		return fmt.Errorf("failed to count divisions: %w", err)
	}
	if count > 0 {
		return nil
	}

	divisions := defaultDivisions()
	if err := s.ReplaceDivisions(ctx, divisions); err != nil {
		return err
	}

	settings := &models.AllocationSettings{
		TotalHQCost:   64_663_300,
		FixedRatio:    0.82,
		VariableRatio: 0.18,
		Shares:        models.EqualShares(divisions),
	}
	return s.SaveAllocationSettings(ctx, settings)
}

// defaultDivisions returns the seed planning figures for a fresh database.
func defaultDivisions() []models.Division {
	return []models.Division{
		{Name: "Careers", Revenue: 26_240_000, FixedCost: 25_572_000, VariableCost: 10_430_800},
		{Name: "Inside Sales", Revenue: 19_943_000, FixedCost: 30_516_360, VariableCost: 7_014_000},
		{Name: "Field Sales", Revenue: 683_000, FixedCost: 4_830_000, VariableCost: 374_600},
		{Name: "SP", Revenue: 6_520_000, FixedCost: 15_112_000, VariableCost: 2_985_600},
		{Name: "Food Service", Revenue: 3_581_000, FixedCost: 9_862_800, VariableCost: 1_619_400},
	}
}
