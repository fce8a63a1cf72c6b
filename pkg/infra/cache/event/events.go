package event

type Event interface {
	Type() string
}

const SettingsChangedEventType = "SettingsChangedEvent"
