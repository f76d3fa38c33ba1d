// Package config provides YAML-based application and game configuration
// loading and difficulty management for the arcade platform.
package config

// SnakeConfig contains all configuration for the Snake games.
type SnakeConfig struct {
	Gameplay   SnakeGameplay    `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGameplay defines the rules of Snake.
type SnakeGameplay struct {
	InitialLength int `yaml:"initial_length"`
	FoodPoints    int `yaml:"food_points"`
	MoveEvery     int `yaml:"move_every"`     // Ticks between moves at base speed
	MinMoveEvery  int `yaml:"min_move_every"` // Fastest allowed move interval
	Grow          int `yaml:"grow"`           // Segments added per food
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics defines ball and paddle speeds, in cells per tick.
type PongPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
	SpinFactor   float64 `yaml:"spin_factor"`
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
	Offset int `yaml:"offset"`
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore   int `yaml:"win_score"`
	ServeDelay int `yaml:"serve_delay"` // Ticks before the ball is served
}

// PongCPU defines the opponent's tracking skill range.
type PongCPU struct {
	MinSkill float64 `yaml:"min_skill"`
	MaxSkill float64 `yaml:"max_skill"`
}

// AsteroidsConfig contains all configuration for the Asteroids games.
type AsteroidsConfig struct {
	Ship       AsteroidsShip     `yaml:"ship"`
	Bullets    AsteroidsBullets  `yaml:"bullets"`
	Rocks      AsteroidsRocks    `yaml:"rocks"`
	Gameplay   AsteroidsGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// AsteroidsShip defines ship handling.
type AsteroidsShip struct {
	Radius   float64 `yaml:"radius"`
	Thrust   float64 `yaml:"thrust"`
	Drag     float64 `yaml:"drag"` // Fraction of velocity kept per tick
	MaxSpeed float64 `yaml:"max_speed"`
	TurnRate float64 `yaml:"turn_rate"` // Radians per tick
}

// AsteroidsBullets defines projectile behavior.
type AsteroidsBullets struct {
	Speed    float64 `yaml:"speed"`
	TTL      int     `yaml:"ttl"`
	MaxAlive int     `yaml:"max_alive"`
}

// AsteroidsRocks defines rock spawning and splitting.
type AsteroidsRocks struct {
	InitialCount int       `yaml:"initial_count"`
	Speed        float64   `yaml:"speed"`
	Radii        []float64 `yaml:"radii"`  // Indexed by tier, smallest first
	Points       []int     `yaml:"points"` // Indexed by tier
	Split        int       `yaml:"split"`  // Fragments per destroyed rock
}

// AsteroidsGameplay defines run rules.
type AsteroidsGameplay struct {
	Lives        int `yaml:"lives"`
	Invulnerable int `yaml:"invulnerable"` // Ticks of immunity after respawn
	TimeAttack   int `yaml:"time_attack_rocks"`
}

// InvadersConfig contains all configuration for Invaders.
type InvadersConfig struct {
	Formation  InvadersFormation `yaml:"formation"`
	Player     InvadersPlayer    `yaml:"player"`
	Bullets    InvadersBullets   `yaml:"bullets"`
	Gameplay   InvadersGameplay  `yaml:"gameplay"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// InvadersFormation defines the marching grid.
type InvadersFormation struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	GapX       float64 `yaml:"gap_x"`
	GapY       float64 `yaml:"gap_y"`
	MarchEvery int     `yaml:"march_every"` // Ticks between formation steps
	Step       float64 `yaml:"step"`
	Drop       float64 `yaml:"drop"`
}

// InvadersPlayer defines the cannon.
type InvadersPlayer struct {
	Width float64 `yaml:"width"`
	Speed float64 `yaml:"speed"`
}

// InvadersBullets defines shots of both sides.
type InvadersBullets struct {
	PlayerSpeed float64 `yaml:"player_speed"`
	EnemySpeed  float64 `yaml:"enemy_speed"`
	FireChance  float64 `yaml:"fire_chance"` // Per tick probability of an enemy shot
	MaxEnemy    int     `yaml:"max_enemy"`
}

// InvadersGameplay defines run rules.
type InvadersGameplay struct {
	Lives     int `yaml:"lives"`
	RowPoints int `yaml:"row_points"` // Points for the bottom row, doubled per row upward
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction int     `yaml:"interval_reduction"` // Tick interval reduction at max difficulty
	CountIncrease     int     `yaml:"count_increase"`     // Extra spawns at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Unknown names yield "".
func ParsePreset(name string) DifficultyPreset {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	}
	return ""
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset adjusts a difficulty block for a preset. An empty preset
// keeps the configured values.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Enabled = false
	default:
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}
