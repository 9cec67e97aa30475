// Package config handles simulation configuration loading and management.
package config

// Config holds all simulation settings.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	AI         AIConfig         `yaml:"ai"`
	Player     PlayerConfig     `yaml:"player"`
	Arena      ArenaConfig      `yaml:"arena"`
	Logging    LoggingConfig    `yaml:"logging"`
	Save       SaveConfig       `yaml:"save"`
	View       ViewConfig       `yaml:"view"`
}

// SimulationConfig holds loop and input settings.
type SimulationConfig struct {
	Scene     string  `yaml:"scene"`      // Path to scene YAML; empty uses the built-in scene
	Script    string  `yaml:"script"`     // Path to tengo input script; empty means idle player
	DeltaTime float32 `yaml:"delta_time"` // Fixed step in seconds
	Ticks     int     `yaml:"ticks"`      // Stop after this many ticks; 0 runs until the scene ends
	Realtime  bool    `yaml:"realtime"`   // Sleep between ticks to match wall clock
	Seed      uint64  `yaml:"seed"`       // Encounter spawn seed
	Watch     bool    `yaml:"watch"`      // Rebuild the scene when its files change
}

// AIConfig holds enemy behavior tunables.
type AIConfig struct {
	SightRadius       float32 `yaml:"sight_radius"`
	SightAngle        float32 `yaml:"sight_angle"`     // Half-angle of the perception cone in radians
	FacingRelative    bool    `yaml:"facing_relative"` // Measure the cone from the enemy's yaw instead of world +Z
	MoveSpeed         float32 `yaml:"move_speed"`
	WaypointTolerance float32 `yaml:"waypoint_tolerance"`
	AttackRange       float32 `yaml:"attack_range"`
	WaitTime          float32 `yaml:"wait_time"`
	CooldownTime      float32 `yaml:"cooldown_time"`
	AttackWindowStart float32 `yaml:"attack_window_start"`
	AttackWindowEnd   float32 `yaml:"attack_window_end"`
	AttackDuration    float32 `yaml:"attack_duration"`
	AttackDamage      int     `yaml:"attack_damage"`
	MaxIterations     int     `yaml:"max_iterations"`
	LoseSightDistance float32 `yaml:"lose_sight_distance"`
	VigilanceTime     float32 `yaml:"vigilance_time"`
	OverlookTime      float32 `yaml:"overlook_time"`
	AlertRadius       float32 `yaml:"alert_radius"` // 0 disables alert broadcasts
}

// PlayerConfig holds player controller settings.
type PlayerConfig struct {
	Health      int     `yaml:"health"`
	MoveSpeed   float32 `yaml:"move_speed"`
	JumpSpeed   float32 `yaml:"jump_speed"`
	Gravity     float32 `yaml:"gravity"`
	AttackClip  string  `yaml:"attack_clip"`
	AttackPower int     `yaml:"attack_power"`
}

// ArenaConfig holds the play rectangle on the XZ plane.
type ArenaConfig struct {
	Left    float64 `yaml:"left"`
	Right   float64 `yaml:"right"`
	Back    float64 `yaml:"back"`
	Forward float64 `yaml:"forward"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// SaveConfig holds achievement persistence settings.
type SaveConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"app_name"`
}

// ViewConfig holds terminal debug view settings.
type ViewConfig struct {
	Enabled     bool `yaml:"enabled"`
	RefreshRate int  `yaml:"refresh_rate"` // Redraw every N ticks
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			DeltaTime: 1.0 / 60.0,
			Ticks:     0,
			Realtime:  false,
			Seed:      1,
		},
		AI: AIConfig{
			SightRadius:       5.0,
			SightAngle:        1.0,
			FacingRelative:    false,
			MoveSpeed:         5.0,
			WaypointTolerance: 0.5,
			AttackRange:       1.5,
			WaitTime:          2.0,
			CooldownTime:      5.0,
			AttackWindowStart: 0.05,
			AttackWindowEnd:   0.6,
			AttackDuration:    1.0,
			AttackDamage:      5,
			MaxIterations:     1000,
			LoseSightDistance: 12.0,
			VigilanceTime:     3.0,
			OverlookTime:      2.0,
			AlertRadius:       8.0,
		},
		Player: PlayerConfig{
			Health:      13,
			MoveSpeed:   5.0,
			JumpSpeed:   5.0,
			Gravity:     9.8,
			AttackClip:  "Attack.Light",
			AttackPower: 5,
		},
		Arena: ArenaConfig{
			Left:    85,
			Right:   115,
			Back:    70,
			Forward: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Save: SaveConfig{
			Enabled: true,
			AppName: "oni-patrol",
		},
		View: ViewConfig{
			Enabled:     false,
			RefreshRate: 4,
		},
	}
}
