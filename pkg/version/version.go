package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "2.0.0"
	AppName   = "SpamShield"
	BuildDate = "unknown"
)

// Info contains versioning information
type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns version information
func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Agent returns the identifier sent to the verdict service, e.g. "prestashop-2.0.0".
func Agent(platform string) string {
	if platform == "" {
		platform = "prestashop"
	}
	return platform + "-" + Version
}
