package settings

import (
	"context"
	"fmt"

	domain "github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Manager --dir=. --output=./mocks --filename=settings_manager_mock.go --case=underscore --with-expecter
type Manager interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) error
	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error
}

type manager struct {
	logger   *logrus.Logger
	store    domain.Store
	provider domain.Provider
}

func NewManager(logger *logrus.Logger, store domain.Store) Manager {
	return &manager{
		logger:   logger,
		store:    store,
		provider: domain.NewProvider(store),
	}
}

func (m *manager) Get(ctx context.Context) (domain.Settings, error) {
	return m.provider.Current(ctx)
}

// Update validates first and writes both settings together, so a failure
// leaves both untouched.
func (m *manager) Update(ctx context.Context, s domain.Settings) error {
	if err := domain.ValidateAPIKey(s.APIKey); err != nil {
		return err
	}
	if err := m.store.SetMany(ctx, map[string]string{
		domain.KeyAPIKey:            s.APIKey,
		domain.KeyEnableBotDetector: domain.FormatBool(s.BotDetectorEnabled),
	}); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	m.logger.Info("antispam settings updated")
	return nil
}

func (m *manager) Install(ctx context.Context) error {
	if err := m.store.Set(ctx, domain.KeyEnableBotDetector, domain.FormatBool(true)); err != nil {
		return fmt.Errorf("failed to install settings: %w", err)
	}
	return nil
}

func (m *manager) Uninstall(ctx context.Context) error {
	for _, key := range []string{domain.KeyAPIKey, domain.KeyEnableBotDetector} {
		if err := m.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
