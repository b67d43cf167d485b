package db

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration represents a versioned schema change
type Migration struct {
	ID       int
	Filename string
	Content  string
}

// Migrate applies every embedded migration newer than the recorded schema version
func (db *DB) Migrate() error {
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			filename VARCHAR(255) NOT NULL,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := db.CurrentVersion()
	if err != nil {
		return err
	}

	migrations, err := loadMigrations(migrationFiles)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.ID <= current {
			continue
		}
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.ID, m.Filename, err)
		}
	}
	return nil
}

// CurrentVersion returns the highest applied migration, 0 when none ran
func (db *DB) CurrentVersion() (int, error) {
	var version int
	if err := db.Raw("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (db *DB) runMigration(m Migration) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.Content).Error; err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
		return tx.Exec("INSERT INTO schema_migrations (version, filename) VALUES (?, ?)", m.ID, m.Filename).Error
	})
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		// "001_token_configs.sql" -> 1
		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			continue
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}

		content, err := fs.ReadFile(fsys, "migrations/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{ID: id, Filename: entry.Name(), Content: string(content)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].ID < migrations[j].ID
	})
	return migrations, nil
}
