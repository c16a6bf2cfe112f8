package domain

import "time"

// Settings defaults.
const (
	DefaultFetchTimeout      = 30 * time.Second
	DefaultFetchConcurrency  = 4
	DefaultRequestsPerSecond = 5.0
	DefaultSchedule          = "@every 30m"
	DefaultServerAddr        = "127.0.0.1:8750"
	DefaultLogLevel          = "info"
)

// Settings is the application configuration assembled from the config store.
type Settings struct {
	Sites      SiteSettings
	QuickLinks QuickLinkSettings
	Users      UserSettings
	Scheduler  SchedulerSettings
	Server     ServerSettings
	LogLevel   string `validate:"oneof=trace debug info warn error"`
}

// SiteSettings configures the external site adapter.
type SiteSettings struct {
	// Secret is sent as the "secret" query parameter.
	Secret string

	// Endpoints are the site search endpoints.
	Endpoints []string `validate:"dive,required"`

	// Timeout bounds each endpoint request.
	Timeout time.Duration `validate:"gt=0"`

	// Concurrency bounds parallel endpoint fetches.
	Concurrency int `validate:"gte=1"`

	// RequestsPerSecond throttles request starts across all endpoints.
	RequestsPerSecond float64 `validate:"gt=0"`
}

// QuickLinkSettings configures the quick-links adapter.
type QuickLinkSettings struct {
	// Path is the YAML link configuration. Empty disables the adapter.
	Path string
}

// UserSettings configures the user directory adapter.
type UserSettings struct {
	// Enabled turns user indexing on.
	Enabled bool

	// ProfileURL is a fmt template receiving the user id.
	ProfileURL string
}

// SchedulerSettings configures the background sync schedule.
type SchedulerSettings struct {
	Enabled bool

	// Schedule is a cron spec or descriptor such as "@every 30m".
	Schedule string `validate:"required"`
}

// ServerSettings configures the HTTP query API.
type ServerSettings struct {
	Addr string `validate:"required,hostname_port"`
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Sites: SiteSettings{
			Timeout:           DefaultFetchTimeout,
			Concurrency:       DefaultFetchConcurrency,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Users: UserSettings{
			Enabled: true,
		},
		Scheduler: SchedulerSettings{
			Enabled:  true,
			Schedule: DefaultSchedule,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
		LogLevel: DefaultLogLevel,
	}
}
