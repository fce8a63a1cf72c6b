package event

// SettingsChangedEvent tells every instance to drop its cached copy of a setting.
type SettingsChangedEvent struct {
	Name string `json:"name"`
}

func (e SettingsChangedEvent) Type() string {
	return SettingsChangedEventType
}
