package settings

import (
	"context"
	"errors"
	"regexp"
	"strconv"
)

const (
	KeyAPIKey             = "CLEANTALKANTISPAM_API_KEY"
	KeyEnableBotDetector  = "CLEANTALKANTISPAM_ENABLE_BOTDETECTOR"
	BotDetectorScriptURL  = "https://moderate.cleantalk.org/ct-bot-detector-wrapper.js"
	botDetectorScriptHTML = `<script src="` + BotDetectorScriptURL + `"></script>`
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration value")
	ErrSettingNotFound      = errors.New("setting not found")

	genericNamePattern = regexp.MustCompile(`^[^<>={}]*$`)
)

// Settings is the host-owned plugin configuration.
type Settings struct {
	APIKey             string `json:"api_key"`
	BotDetectorEnabled bool   `json:"enable_bot_detector"`
}

// Store is the host key-value settings store.
//
//go:generate mockery --name=Store --dir=. --output=./mocks --filename=store_mock.go --case=underscore --with-expecter
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	// SetMany writes all values or none of them.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, name string) error
}

// Provider gives read access to the current settings.
type Provider interface {
	Current(ctx context.Context) (Settings, error)
}

// ValidateAPIKey rejects empty keys and keys that are not a generic name.
func ValidateAPIKey(key string) error {
	if key == "" || !genericNamePattern.MatchString(key) {
		return ErrInvalidConfiguration
	}
	return nil
}

// BotDetectorScript returns the header snippet for the client-side detector, or "" when disabled.
func (s Settings) BotDetectorScript() string {
	if !s.BotDetectorEnabled {
		return ""
	}
	return botDetectorScriptHTML
}

func FormatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ParseBool accepts the host's "1"/"0" encoding as well as Go boolean literals.
func ParseBool(v string) bool {
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

type storeProvider struct {
	store Store
}

// NewProvider reads settings directly from a Store. A missing key reads as empty.
func NewProvider(store Store) Provider {
	return &storeProvider{store: store}
}

func (p *storeProvider) Current(ctx context.Context) (Settings, error) {
	apiKey, err := p.store.Get(ctx, KeyAPIKey)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		return Settings{}, err
	}
	toggle, err := p.store.Get(ctx, KeyEnableBotDetector)
	if err != nil && !errors.Is(err, ErrSettingNotFound) {
		return Settings{}, err
	}
	return Settings{
		APIKey:             apiKey,
		BotDetectorEnabled: ParseBool(toggle),
	}, nil
}
