package response

import "github.com/NeuralTrust/SpamShield/pkg/domain/settings"

type SettingsResponse struct {
	APIKeyConfigured  bool   `json:"api_key_configured"`
	APIKey            string `json:"api_key,omitempty"`
	EnableBotDetector bool   `json:"enable_bot_detector"`
}

// NewSettingsResponse masks all but the last four characters of the key.
func NewSettingsResponse(s settings.Settings) SettingsResponse {
	return SettingsResponse{
		APIKeyConfigured:  s.APIKey != "",
		APIKey:            maskKey(s.APIKey),
		EnableBotDetector: s.BotDetectorEnabled,
	}
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return key
	}
	masked := make([]byte, len(key))
	for i := range masked {
		if i < len(key)-4 {
			masked[i] = '*'
		} else {
			masked[i] = key[i]
		}
	}
	return string(masked)
}
