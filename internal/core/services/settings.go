package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyHostURL       = "host.url"
	KeyHostTimeout   = "host.timeout"
	KeyContentID     = "content.id"
	KeyTypesetSource = "typeset.source"
	KeyTypesetFont   = "typeset.font"
	KeyLogVerbose    = "log.verbose"
	KeyWatchInterval = "watch.interval"
	KeyWatchPaths    = "watch.paths"
	KeyWatchIgnore   = "watch.ignore"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
	kindList
)

var settingKeys = []struct {
	key  string
	kind keyKind
}{
	{KeyHostURL, kindString},
	{KeyHostTimeout, kindInt},
	{KeyContentID, kindString},
	{KeyTypesetSource, kindString},
	{KeyTypesetFont, kindString},
	{KeyLogVerbose, kindBool},
	{KeyWatchInterval, kindInt},
	{KeyWatchPaths, kindList},
	{KeyWatchIgnore, kindList},
}

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset keys take their defaults.
// host.timeout is in seconds and watch.interval in milliseconds.
// watch.paths and watch.ignore are string lists.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	return &domain.Settings{
		HostURL:       s.configStore.GetString(KeyHostURL),
		Timeout:       s.getDuration(KeyHostTimeout, time.Second, defaults.Timeout),
		ContentID:     s.getString(KeyContentID, defaults.ContentID),
		TypesetSource: s.getString(KeyTypesetSource, defaults.TypesetSource),
		PreferredFont: s.getString(KeyTypesetFont, defaults.PreferredFont),
		Verbose:       s.configStore.GetBool(KeyLogVerbose),
		WatchInterval: s.getDuration(KeyWatchInterval, time.Millisecond, defaults.WatchInterval),
		WatchPaths:    s.configStore.GetStringSlice(KeyWatchPaths),
		WatchIgnore:   s.configStore.GetStringSlice(KeyWatchIgnore),
	}, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyHostURL, settings.HostURL},
		{KeyHostTimeout, int(settings.Timeout / time.Second)},
		{KeyContentID, settings.ContentID},
		{KeyTypesetSource, settings.TypesetSource},
		{KeyTypesetFont, settings.PreferredFont},
		{KeyLogVerbose, settings.Verbose},
		{KeyWatchInterval, int(settings.WatchInterval / time.Millisecond)},
		{KeyWatchPaths, settings.WatchPaths},
		{KeyWatchIgnore, settings.WatchIgnore},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("failed to save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// Set parses value according to key and stores it.
func (s *SettingsService) Set(key, value string) error {
	for _, k := range settingKeys {
		if k.key != key {
			continue
		}
		var parsed any = value
		switch k.kind {
		case kindInt:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
			}
			parsed = n
		case kindBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
			}
			parsed = b
		case kindList:
			parsed = parseList(value)
		}
		if err := s.configStore.Set(key, parsed); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return s.configStore.Save()
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for _, k := range settingKeys {
		keys = append(keys, k.key)
	}
	return keys
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * unit
}

// parseList splits a comma separated value. Blank items are dropped.
func parseList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
