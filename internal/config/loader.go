package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a named config.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml
// -> embedded default -> hardcoded fallback.
// Files are decoded over the fallback so omitted keys keep their defaults.
func load[T any](name, customPath string, fallback func() T) (T, error) {
	cfg := fallback()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := name + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		attempt := fallback()
		if err := yaml.Unmarshal(data, &attempt); err == nil {
			return attempt, nil
		}
	}

	if err := yaml.Unmarshal(DefaultYAML(name), &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadApp loads the application configuration (arcade.yaml).
func LoadApp(customPath string) (AppConfig, error) {
	return load("arcade", customPath, DefaultAppConfig)
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig)
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig)
}

// LoadAsteroids loads Asteroids configuration.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	return load("asteroids", customPath, DefaultAsteroidsConfig)
}

// LoadInvaders loads Invaders configuration.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	return load("invaders", customPath, DefaultInvadersConfig)
}
