package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type configurationEntry struct {
	Name      string `gorm:"primaryKey"`
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (configurationEntry) TableName() string {
	return "configuration"
}

// ConfigurationRepository is the host key-value settings store.
type ConfigurationRepository struct {
	db *gorm.DB
}

func NewConfigurationRepository(db *gorm.DB) settings.Store {
	return &ConfigurationRepository{
		db: db,
	}
}

func (r *ConfigurationRepository) Get(ctx context.Context, name string) (string, error) {
	entry := new(configurationEntry)
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", settings.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to read setting %s: %w", name, err)
	}
	return entry.Value, nil
}

func (r *ConfigurationRepository) Set(ctx context.Context, name, value string) error {
	now := time.Now()
	entry := &configurationEntry{
		Name:      name,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", name, err)
	}
	return nil
}

// SetMany upserts every value in one statement inside a transaction.
func (r *ConfigurationRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	now := time.Now()
	entries := make([]configurationEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, configurationEntry{
			Name:      name,
			Value:     values[name],
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("failed to write settings %s: %w", strings.Join(names, ", "), err)
	}
	return nil
}

func (r *ConfigurationRepository) Delete(ctx context.Context, name string) error {
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&configurationEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", name, err)
	}
	return nil
}
