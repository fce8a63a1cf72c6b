package channel

type Channel string

const SettingsEventsChannel Channel = "settings_events"
