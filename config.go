package spacerocks

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed configs/default.yaml
var defaultConfigYAML []byte

// Config is everything tunable about a game.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Ship      ShipConfig      `yaml:"ship"`
	Weapon    WeaponConfig    `yaml:"weapon"`
	Asteroids AsteroidConfig  `yaml:"asteroids"`
	Particles ParticleConfig  `yaml:"particles"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Respawn   RespawnConfig   `yaml:"respawn"`
	Goal      GoalConfig      `yaml:"goal"`
}

type WorldConfig struct {
	Width              float32 `yaml:"width"`
	Height             float32 `yaml:"height"`
	PixelsPerMeter     float32 `yaml:"pixels_per_meter"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
	StatusInterval     float32 `yaml:"status_interval"` // seconds between status log lines, 0 = off
}

type ShipConfig struct {
	Length          float32   `yaml:"length"`
	Width           float32   `yaml:"width"`
	Density         float32   `yaml:"density"`
	Restitution     float32   `yaml:"restitution"`
	Health          float32   `yaml:"health"`
	InvulnerableFor float32   `yaml:"invulnerable_for"`
	MaxSpeed        float32   `yaml:"max_speed"`
	LinearDamping   float32   `yaml:"linear_damping"`
	AngularDamping  float32   `yaml:"angular_damping"`
	MainForce       float32   `yaml:"main_force"`
	RetroForce      float32   `yaml:"retro_force"`
	SwayForce       float32   `yaml:"sway_force"`
	TurnTorque      float32   `yaml:"turn_torque"`   // force times world units
	ThrottleRate    float32   `yaml:"throttle_rate"` // throttle units per second
	Energy          float32   `yaml:"energy"`
	ChargeRate      float32   `yaml:"charge_rate"`
	Steering        PIDConfig `yaml:"steering"`
}

type PIDConfig struct {
	P float32 `yaml:"p"`
	I float32 `yaml:"i"`
	D float32 `yaml:"d"`
}

type WeaponConfig struct {
	Cooldown    float32 `yaml:"cooldown"`
	MuzzleSpeed float32 `yaml:"muzzle_speed"`
	Lifetime    float32 `yaml:"lifetime"`
	Damage      float32 `yaml:"damage"`
	Radius      float32 `yaml:"radius"`
	EnergyCost  float32 `yaml:"energy_cost"`
}

type AsteroidConfig struct {
	InitialCount       int     `yaml:"initial_count"`
	TargetCount        int     `yaml:"target_count"` // weighted, see AsteroidSystem.Weight
	SpawnInterval      float32 `yaml:"spawn_interval"`
	MinRadius          float32 `yaml:"min_radius"`
	MaxRadius          float32 `yaml:"max_radius"`
	SplitFactor        float32 `yaml:"split_factor"`
	Fragments          int     `yaml:"fragments"`
	FragmentSpeedScale float32 `yaml:"fragment_speed_scale"`
	MinSpeed           float32 `yaml:"min_speed"`
	MaxSpeed           float32 `yaml:"max_speed"`
	MaxSpin            float32 `yaml:"max_spin"` // degrees per second
	OutlinePoints      int     `yaml:"outline_points"`
	OutlineSigma       float32 `yaml:"outline_sigma"`
	Density            float32 `yaml:"density"`
	Restitution        float32 `yaml:"restitution"`
	HealthPerRadius    float32 `yaml:"health_per_radius"`
	DamagePerRadius    float32 `yaml:"damage_per_radius"`
	SafeDistance       float32 `yaml:"safe_distance"`
	Points             []int   `yaml:"points"` // per generation, last entry repeats
}

type ParticleConfig struct {
	MaxParticles       int     `yaml:"max_particles"`
	ExplosionPerRadius float32 `yaml:"explosion_per_radius"`
	ExplosionMax       int     `yaml:"explosion_max"`
	ExplosionSpeed     float32 `yaml:"explosion_speed"`
	Lifetime           float32 `yaml:"lifetime"`
	StartSize          float32 `yaml:"start_size"`
	Damping            float32 `yaml:"damping"`
	StartColor         Color   `yaml:"start_color"`
	EndColor           Color   `yaml:"end_color"`
	ExhaustRate        float32 `yaml:"exhaust_rate"` // particles per second at full throttle
	ExhaustSpeed       float32 `yaml:"exhaust_speed"`
	ExhaustSpread      float32 `yaml:"exhaust_spread"` // degrees either side
	ExhaustLifetime    float32 `yaml:"exhaust_lifetime"`
	ExhaustSize        float32 `yaml:"exhaust_size"`
	ExhaustColor       Color   `yaml:"exhaust_color"`
	FireThreshold      float32 `yaml:"fire_threshold"` // health fraction below which a ship burns
	FireRate           float32 `yaml:"fire_rate"`      // particles per second at zero health
	FireSpread         float32 `yaml:"fire_spread"`    // degrees either side at zero health
	FireSpeed          float32 `yaml:"fire_speed"`
	FireLifetime       float32 `yaml:"fire_lifetime"`
	FireSize           float32 `yaml:"fire_size"`
	FireStartColor     Color   `yaml:"fire_start_color"`
	FireEndColor       Color   `yaml:"fire_end_color"`
}

type AutopilotConfig struct {
	Enabled     bool    `yaml:"enabled"`
	FireAngle   float32 `yaml:"fire_angle"`
	CruiseSpeed float32 `yaml:"cruise_speed"`
	StandOff    float32 `yaml:"stand_off"`
}

// RespawnConfig brings the player back after death instead of ending the game.
type RespawnConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Delay           float32 `yaml:"delay"`
	InvulnerableFor float32 `yaml:"invulnerable_for"`
}

// GoalConfig places waypoints for the player to reach.
type GoalConfig struct {
	Enabled    bool    `yaml:"enabled"`
	MinRange   float32 `yaml:"min_range"`
	MaxRange   float32 `yaml:"max_range"`
	ReachRange float32 `yaml:"reach_range"`
}

type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// DefaultConfig mirrors configs/default.yaml.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:              2048,
			Height:             1024,
			PixelsPerMeter:     32,
			VelocityIterations: 8,
			PositionIterations: 3,
			StatusInterval:     5,
		},
		Ship: ShipConfig{
			Length:          32,
			Width:           24,
			Density:         1,
			Restitution:     0.3,
			Health:          100,
			InvulnerableFor: 1,
			MaxSpeed:        400,
			LinearDamping:   0.3,
			AngularDamping:  4,
			MainForce:       120,
			RetroForce:      60,
			SwayForce:       60,
			TurnTorque:      256,
			ThrottleRate:    4,
			Energy:          100,
			ChargeRate:      10,
			Steering:        PIDConfig{P: 1, I: 0.05, D: 0.2},
		},
		Weapon: WeaponConfig{
			Cooldown:    0.2,
			MuzzleSpeed: 600,
			Lifetime:    1.5,
			Damage:      20,
			Radius:      3,
			EnergyCost:  5,
		},
		Asteroids: AsteroidConfig{
			InitialCount:       6,
			TargetCount:        24,
			SpawnInterval:      2,
			MinRadius:          12,
			MaxRadius:          56,
			SplitFactor:        0.5,
			Fragments:          3,
			FragmentSpeedScale: 1.5,
			MinSpeed:           20,
			MaxSpeed:           80,
			MaxSpin:            45,
			OutlinePoints:      12,
			OutlineSigma:       0.15,
			Density:            1,
			Restitution:        0.6,
			HealthPerRadius:    1,
			DamagePerRadius:    0.5,
			SafeDistance:       200,
			Points:             []int{20, 50, 100},
		},
		Particles: ParticleConfig{
			MaxParticles:       2000,
			ExplosionPerRadius: 1,
			ExplosionMax:       60,
			ExplosionSpeed:     150,
			Lifetime:           0.8,
			StartSize:          4,
			Damping:            2,
			StartColor:         Color{R: 255, G: 220, B: 120, A: 255},
			EndColor:           Color{R: 120, G: 40, B: 20, A: 0},
			ExhaustRate:        60,
			ExhaustSpeed:       120,
			ExhaustSpread:      12,
			ExhaustLifetime:    0.4,
			ExhaustSize:        3,
			ExhaustColor:       Color{R: 120, G: 180, B: 255, A: 255},
			FireThreshold:      0.5,
			FireRate:           40,
			FireSpread:         30,
			FireSpeed:          50,
			FireLifetime:       1,
			FireSize:           5,
			FireStartColor:     Color{R: 255, G: 250, B: 150, A: 255},
			FireEndColor:       Color{R: 255, G: 128, B: 0, A: 0},
		},
		Autopilot: AutopilotConfig{
			Enabled:     true,
			FireAngle:   8,
			CruiseSpeed: 120,
			StandOff:    250,
		},
		Respawn: RespawnConfig{
			Enabled:         false,
			Delay:           2,
			InvulnerableFor: 3,
		},
		Goal: GoalConfig{
			Enabled:    true,
			MinRange:   300,
			MaxRange:   800,
			ReachRange: 60,
		},
	}
}

// LoadConfig reads the game configuration.
// Search order: path -> ~/.spacerocks/config.yaml -> ./configs/spacerocks.yaml -> embedded default.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return ParseConfig(data)
	}

	if userPath := userConfigPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			return ParseConfig(data)
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "spacerocks.yaml")); err == nil {
		return ParseConfig(data)
	}

	return ParseConfig(defaultConfigYAML)
}

// ParseConfig overlays YAML onto the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spacerocks", "config.yaml")
}

var (
	ErrWorldSize     = errors.New("world width and height must be positive")
	ErrRadiusRange   = errors.New("asteroid radius range is invalid")
	ErrSplitFactor   = errors.New("asteroid split factor must be in (0,1)")
	ErrFragmentCount = errors.New("asteroid fragments must be at least 2")
	ErrGoalRange     = errors.New("goal ranges are invalid")
)

// Validate rejects configurations the systems cannot run with.
func (c Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("invalid world %vx%v: %w", c.World.Width, c.World.Height, ErrWorldSize)
	}
	a := c.Asteroids
	if a.MinRadius <= 0 || a.MaxRadius < a.MinRadius {
		return fmt.Errorf("invalid radius [%v,%v]: %w", a.MinRadius, a.MaxRadius, ErrRadiusRange)
	}
	if a.SplitFactor <= 0 || a.SplitFactor >= 1 {
		return fmt.Errorf("invalid split factor %v: %w", a.SplitFactor, ErrSplitFactor)
	}
	if a.Fragments < 2 {
		return fmt.Errorf("invalid fragment count %d: %w", a.Fragments, ErrFragmentCount)
	}
	if g := c.Goal; g.Enabled && (g.MinRange <= 0 || g.MaxRange < g.MinRange || g.ReachRange <= 0) {
		return fmt.Errorf("invalid goal range [%v,%v] reach %v: %w", g.MinRange, g.MaxRange, g.ReachRange, ErrGoalRange)
	}
	return nil
}

// YAML renders the configuration the way LoadConfig reads it.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
