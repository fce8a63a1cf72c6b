package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

const versionTable = "migration_version"

var ErrNoAppliedMigrations = errors.New("no applied migrations")

type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var (
	registryMu         sync.Mutex
	migrationsRegistry = make(map[string]Migration)
)

// RegisterMigration is called from init functions of the migrations package.
func RegisterMigration(m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := migrationsRegistry[m.ID]; exists {
		panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
	}
	migrationsRegistry[m.ID] = m
}

// registered returns migrations ordered by ID.
func registered() []Migration {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Migration, 0, len(migrationsRegistry))
	for _, m := range migrationsRegistry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

func (m *MigrationsManager) ensureVersionTable(ctx context.Context) error {
	return m.db.WithContext(ctx).Exec(`
CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`).Error
}

func (m *MigrationsManager) appliedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := m.db.WithContext(ctx).Raw("SELECT id FROM " + versionTable + " ORDER BY id").Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ApplyPending runs every registered migration that is not recorded yet.
// Each migration and its version row commit in one transaction.
func (m *MigrationsManager) ApplyPending(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, fmt.Errorf("ensure migrations table: %w", err)
	}
	ids, err := m.appliedIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("load applied migrations: %w", err)
	}
	applied := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		applied[id] = struct{}{}
	}

	count := 0
	for _, mig := range registered() {
		if _, ok := applied[mig.ID]; ok {
			continue
		}
		if mig.Up == nil {
			return count, fmt.Errorf("migration %s has no Up function", mig.ID)
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Exec(
				"INSERT INTO "+versionTable+" (id, name, applied_at) VALUES (?, ?, ?)",
				mig.ID, mig.Name, time.Now(),
			).Error
		})
		if err != nil {
			return count, fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		count++
	}
	return count, nil
}

// RollbackLast reverts the most recently applied migration.
func (m *MigrationsManager) RollbackLast(ctx context.Context) (string, error) {
	ids, err := m.appliedIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("load applied migrations: %w", err)
	}
	if len(ids) == 0 {
		return "", ErrNoAppliedMigrations
	}
	last := ids[len(ids)-1]

	registryMu.Lock()
	mig, ok := migrationsRegistry[last]
	registryMu.Unlock()
	if !ok || mig.Down == nil {
		return "", fmt.Errorf("migration %s cannot be rolled back", last)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mig.Down(tx); err != nil {
			return err
		}
		return tx.Exec("DELETE FROM "+versionTable+" WHERE id = ?", last).Error
	})
	if err != nil {
		return "", fmt.Errorf("rollback migration %s: %w", last, err)
	}
	return last, nil
}
