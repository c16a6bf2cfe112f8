package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySiteSecret        = "sites.secret"
	KeySiteEndpoints     = "sites.endpoints"
	KeySiteTimeout       = "sites.timeout_seconds"
	KeySiteConcurrency   = "sites.concurrency"
	KeySiteRate          = "sites.requests_per_second"
	KeyQuickLinksPath    = "quicklinks.path"
	KeyUsersEnabled      = "users.enabled"
	KeyUsersProfileURL   = "users.profile_url"
	KeySchedulerEnabled  = "scheduler.enabled"
	KeySchedulerSchedule = "scheduler.schedule"
	KeyServerAddr        = "server.addr"
	KeyLogLevel          = "log.level"
)

type valueKind int

const (
	kindString valueKind = iota
	kindList
	kindInt
	kindFloat
	kindBool
)

type keySpec struct {
	kind valueKind
	tag  string
}

// settingKeys lists every key Set accepts with its type and validation tag.
var settingKeys = map[string]keySpec{
	KeySiteSecret:        {kind: kindString},
	KeySiteEndpoints:     {kind: kindList, tag: "dive,required"},
	KeySiteTimeout:       {kind: kindInt, tag: "gt=0"},
	KeySiteConcurrency:   {kind: kindInt, tag: "gte=1"},
	KeySiteRate:          {kind: kindFloat, tag: "gt=0"},
	KeyQuickLinksPath:    {kind: kindString},
	KeyUsersEnabled:      {kind: kindBool},
	KeyUsersProfileURL:   {kind: kindString},
	KeySchedulerEnabled:  {kind: kindBool},
	KeySchedulerSchedule: {kind: kindString, tag: "required"},
	KeyServerAddr:        {kind: kindString, tag: "required,hostname_port"},
	KeyLogLevel:          {kind: kindString, tag: "oneof=trace debug info warn error"},
}

// SettingKeys returns the configurable keys in sorted order.
func SettingKeys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService reads and writes application settings through a config store.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Get assembles settings from the store with defaults applied, then validates them.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Sites: domain.SiteSettings{
			Secret:            s.configStore.GetString(KeySiteSecret),
			Endpoints:         s.configStore.GetStringSlice(KeySiteEndpoints),
			Timeout:           s.getSeconds(KeySiteTimeout, defaults.Sites.Timeout),
			Concurrency:       s.getInt(KeySiteConcurrency, defaults.Sites.Concurrency),
			RequestsPerSecond: s.getFloat(KeySiteRate, defaults.Sites.RequestsPerSecond),
		},
		QuickLinks: domain.QuickLinkSettings{
			Path: s.configStore.GetString(KeyQuickLinksPath),
		},
		Users: domain.UserSettings{
			Enabled:    s.getBool(KeyUsersEnabled, defaults.Users.Enabled),
			ProfileURL: s.configStore.GetString(KeyUsersProfileURL),
		},
		Scheduler: domain.SchedulerSettings{
			Enabled:  s.getBool(KeySchedulerEnabled, defaults.Scheduler.Enabled),
			Schedule: s.getString(KeySchedulerSchedule, defaults.Scheduler.Schedule),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(KeyServerAddr, defaults.Server.Addr),
		},
		LogLevel: s.getString(KeyLogLevel, defaults.LogLevel),
	}

	if err := s.validate.Struct(settings); err != nil {
		return settings, describe(err)
	}
	if _, err := ParseSchedule(settings.Scheduler.Schedule); err != nil {
		return settings, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	return settings, nil
}

// Set validates and stores a single key.
func (s *SettingsService) Set(key, value string) error {
	spec, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	parsed, err := parseValue(spec.kind, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w: %w", key, domain.ErrInvalidInput, err)
	}

	if spec.tag != "" {
		if err := s.validate.Var(parsed, spec.tag); err != nil {
			return fmt.Errorf("setting %s: %w", key, describe(err))
		}
	}
	if key == KeySchedulerSchedule {
		if _, err := ParseSchedule(value); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func parseValue(kind valueKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindList:
		return domain.ParseList(value), nil
	case kindInt:
		return strconv.Atoi(value)
	case kindFloat:
		return strconv.ParseFloat(value, 64)
	case kindBool:
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}

// describe turns validator errors into a single readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if field == "" {
			field = "value"
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

// getFloat accepts TOML floats and integers as well as strings from
// environment overrides.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
