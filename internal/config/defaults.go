package config

import (
	_ "embed"
)

//go:embed defaults/arcade.yaml
var defaultAppYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Gameplay: SnakeGameplay{
			InitialLength: 1,
			FoodPoints:    10,
			MoveEvery:     6,
			MinMoveEvery:  2,
			Grow:          1,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 400,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 4,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallSpeed:    0.5,
			PaddleSpeed:  1.0,
			MaxBallSpeed: 3.0,
			SpinFactor:   0.3,
		},
		Paddles: PongPaddles{
			Height: 5,
			Width:  1,
			Offset: 2,
		},
		Gameplay: PongGameplay{
			WinScore:   5,
			ServeDelay: 60,
		},
		CPU: PongCPU{
			MinSkill: 0.6,
			MaxSkill: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 36000, // 10 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultAsteroidsConfig returns the default Asteroids configuration.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		Ship: AsteroidsShip{
			Radius:   1,
			Thrust:   0.04,
			Drag:     0.99,
			MaxSpeed: 1.2,
			TurnRate: 0.12,
		},
		Bullets: AsteroidsBullets{
			Speed:    1.5,
			TTL:      40,
			MaxAlive: 5,
		},
		Rocks: AsteroidsRocks{
			InitialCount: 4,
			Speed:        0.25,
			Radii:        []float64{1, 2, 3.5},
			Points:       []int{100, 50, 20},
			Split:        2,
		},
		Gameplay: AsteroidsGameplay{
			Lives:        3,
			Invulnerable: 120,
			TimeAttack:   6,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				CountIncrease:   4,
			},
		},
	}
}

// DefaultInvadersConfig returns the default Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Formation: InvadersFormation{
			Rows:       4,
			Cols:       8,
			Width:      3,
			Height:     1,
			GapX:       2,
			GapY:       1,
			MarchEvery: 20,
			Step:       1,
			Drop:       1,
		},
		Player: InvadersPlayer{
			Width: 3,
			Speed: 1,
		},
		Bullets: InvadersBullets{
			PlayerSpeed: 1,
			EnemySpeed:  0.5,
			FireChance:  0.02,
			MaxEnemy:    3,
		},
		Gameplay: InvadersGameplay{
			Lives:     3,
			RowPoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1500,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 15,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML for a config name.
func DefaultYAML(name string) []byte {
	switch name {
	case "arcade":
		return defaultAppYAML
	case "snake":
		return defaultSnakeYAML
	case "pong":
		return defaultPongYAML
	case "asteroids":
		return defaultAsteroidsYAML
	case "invaders":
		return defaultInvadersYAML
	default:
		return nil
	}
}
