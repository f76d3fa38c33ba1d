// Package settings holds the player's theme and audio preferences.
package settings

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
)

// Known themes.
const (
	ThemeClassic = "classic"
	ThemeMono    = "mono"
	ThemeNeon    = "neon"
)

// Themes lists the accepted theme names.
var Themes = []string{ThemeClassic, ThemeMono, ThemeNeon}

const (
	keyTheme = "settings.theme"
	keyAudio = "settings.audio"
)

// ErrUnknownTheme is returned by SetTheme for names outside Themes.
var ErrUnknownTheme = errors.New("settings: unknown theme")

// Prefs is the key-value storage behind Settings.
type Prefs interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Settings is the shared preferences handle. Reads never fail: storage
// errors are logged and defaults are used instead.
type Settings struct {
	prefs  Prefs
	logger *log.Logger

	mu     sync.Mutex
	loaded bool
	theme  string
	audio  bool
}

// New creates a handle over prefs. A nil prefs keeps settings in memory.
func New(prefs Prefs, logger *log.Logger) *Settings {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Settings{prefs: prefs, logger: logger, theme: ThemeClassic, audio: true}
}

// SetFallbackTheme changes the theme used when none is stored. Unknown
// names are ignored.
func (s *Settings) SetFallbackTheme(name string) {
	if !slices.Contains(Themes, name) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.theme = name
	}
}

// Theme returns the active theme name.
func (s *Settings) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.theme
}

// SetTheme switches the theme and persists it.
func (s *Settings) SetTheme(name string) error {
	if !slices.Contains(Themes, name) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.theme = name
	s.save(keyTheme, []byte(name))
	return nil
}

// AudioEnabled reports whether sound cues are on.
func (s *Settings) AudioEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.audio
}

// SetAudioEnabled turns sound cues on or off and persists the choice.
func (s *Settings) SetAudioEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.audio = on
	s.save(keyAudio, []byte(strconv.FormatBool(on)))
}

func (s *Settings) load() {
	if s.loaded || s.prefs == nil {
		s.loaded = true
		return
	}
	s.loaded = true

	if v, ok, err := s.prefs.Get(keyTheme); err != nil {
		s.logger.Warn("cannot read theme, using default", "error", err)
	} else if ok && slices.Contains(Themes, string(v)) {
		s.theme = string(v)
	}

	if v, ok, err := s.prefs.Get(keyAudio); err != nil {
		s.logger.Warn("cannot read audio setting, using default", "error", err)
	} else if ok {
		if on, err := strconv.ParseBool(string(v)); err == nil {
			s.audio = on
		}
	}
}

func (s *Settings) save(key string, value []byte) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Put(key, value); err != nil {
		s.logger.Warn("cannot save setting", "key", key, "error", err)
	}
}
