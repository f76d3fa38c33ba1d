package config

import "time"

// AppConfig is the process-level configuration read from arcade.yaml.
// Command-line flags override individual fields.
type AppConfig struct {
	TickRate int           `yaml:"tick_rate"` // Simulation ticks per second
	Timestep string        `yaml:"timestep"`  // Only "fixed" is supported
	Theme    string        `yaml:"theme"`     // Initial theme when none is stored
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file"`
	Storage  StorageConfig `yaml:"storage"`
	Server   ServerConfig  `yaml:"server"`
	Input    InputConfig   `yaml:"input"`
}

// StorageConfig selects where scores and preferences live.
type StorageConfig struct {
	Backend    string `yaml:"backend"` // "sqlite" or "file"
	DBPath     string `yaml:"db_path"`
	ScoresFile string `yaml:"scores_file"` // Used by the file backend
	ScoresSlot string `yaml:"scores_slot"` // kv key used by the sqlite backend
}

// ServerConfig configures `arcade serve`.
type ServerConfig struct {
	SSHAddr     string   `yaml:"ssh_addr"`
	HTTPAddr    string   `yaml:"http_addr"`
	HostKeyPath string   `yaml:"host_key_path"`
	RateLimit   float64  `yaml:"rate_limit"` // Requests per second per client
	RateBurst   int      `yaml:"rate_burst"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// InputConfig tunes the input mapper.
type InputConfig struct {
	HoldTimeout time.Duration `yaml:"hold_timeout"`
	Deadzone    float64       `yaml:"deadzone"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// DefaultAppConfig returns the built-in application configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		TickRate: 60,
		Timestep: "fixed",
		Theme:    "classic",
		LogLevel: "info",
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			DBPath:     "~/.arcade/scores.db",
			ScoresFile: "~/.arcade/highscores.json",
			ScoresSlot: "highscores",
		},
		Server: ServerConfig{
			SSHAddr:     "0.0.0.0:2222",
			HTTPAddr:    "127.0.0.1:8080",
			HostKeyPath: ".ssh/arcade_ed25519",
			RateLimit:   10,
			RateBurst:   20,
			CORSOrigins: []string{"*"},
		},
		Input: InputConfig{
			HoldTimeout: 120 * time.Millisecond,
			Deadzone:    2,
		},
	}
}
