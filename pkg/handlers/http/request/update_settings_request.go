package request

import "github.com/NeuralTrust/SpamShield/pkg/domain/settings"

type UpdateSettingsRequest struct {
	APIKey            string `json:"api_key"`
	EnableBotDetector bool   `json:"enable_bot_detector"`
}

func (r *UpdateSettingsRequest) ToSettings() settings.Settings {
	return settings.Settings{
		APIKey:             r.APIKey,
		BotDetectorEnabled: r.EnableBotDetector,
	}
}
