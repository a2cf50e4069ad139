// Package config loads folio settings: embedded defaults merged with an
// optional user YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mverhelle/folio/internal/projects"
	"github.com/mverhelle/folio/internal/steer"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	DataDir  string         `yaml:"data_dir"`
	Site     SiteConfig     `yaml:"site"`
	Projects projects.List  `yaml:"projects"`
	Carousel CarouselConfig `yaml:"carousel"`
	World    WorldConfig    `yaml:"world"`
	Steering SteeringConfig `yaml:"steering"`
	Screen   ScreenConfig   `yaml:"screen"`
	Camera   CameraConfig   `yaml:"camera"`
	Play     PlayConfig     `yaml:"play"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SiteConfig struct {
	Name     string `yaml:"name"`
	Initials string `yaml:"initials"`
	GitHub   string `yaml:"github"`
	Bio      string `yaml:"bio"`     // one-line teaser on the landing page
	About    string `yaml:"about"`   // markdown for /about
	Contact  string `yaml:"contact"` // markdown for /contact; empty hides the page
	Theme    string `yaml:"theme"`
}

type CarouselConfig struct {
	Interval time.Duration `yaml:"interval"`
	Fade     time.Duration `yaml:"fade"`
}

type WorldConfig struct {
	Size     float64 `yaml:"size"`
	BodySize float64 `yaml:"body_size"`
}

// SteeringConfig mirrors steer.Params with angles in degrees.
type SteeringConfig struct {
	MaxSpeed        float64 `yaml:"max_speed"`
	Accel           float64 `yaml:"accel"`
	BrakeAccel      float64 `yaml:"brake_accel"`
	CoastDrag       float64 `yaml:"coast_drag"`
	ActiveDrag      float64 `yaml:"active_drag"`
	TurnSlow        float64 `yaml:"turn_slow"`
	Grip            float64 `yaml:"grip"`
	TurnRateAtRest  float64 `yaml:"turn_rate_at_rest"`  // deg/s
	TurnRateAtSpeed float64 `yaml:"turn_rate_at_speed"` // deg/s
	CruiseSpeed     float64 `yaml:"cruise_speed"`
	ArrivalRadius   float64 `yaml:"arrival_radius"`
	AlignTolerance  float64 `yaml:"align_tolerance"` // deg
}

type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

type CameraConfig struct {
	Lerp     float64 `yaml:"lerp"`
	Deadzone float64 `yaml:"deadzone"` // fraction of the viewport
}

type PlayConfig struct {
	HoldWindow time.Duration `yaml:"hold_window"` // terminal key-hold emulation
	HoldDelay  time.Duration `yaml:"hold_delay"`  // first press, before repeats start
	MaxDt      time.Duration `yaml:"max_dt"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	return cfg
}

// Load merges the YAML file at path over the embedded defaults. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Lists are replaced wholesale; scalars only where present.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Projects.Validate(); err != nil {
		return err
	}
	if c.Carousel.Interval <= 0 || c.Carousel.Fade <= 0 {
		return fmt.Errorf("carousel timers must be positive: %w", ErrInvalid)
	}
	if c.Camera.Lerp <= 0 || c.Camera.Lerp > 1 {
		return fmt.Errorf("camera.lerp %v: %w", c.Camera.Lerp, ErrInvalid)
	}
	if c.Camera.Deadzone < 0 || c.Camera.Deadzone >= 1 {
		return fmt.Errorf("camera.deadzone %v: %w", c.Camera.Deadzone, ErrInvalid)
	}
	if c.Play.MaxDt <= 0 {
		return fmt.Errorf("play.max_dt %v: %w", c.Play.MaxDt, ErrInvalid)
	}
	if err := c.SteerParams().Validate(); err != nil {
		return fmt.Errorf("steering: %w", err)
	}
	return nil
}

// SteerParams converts the world and steering sections to model parameters.
func (c *Config) SteerParams() steer.Params {
	s := c.Steering
	return steer.Params{
		WorldSize:       c.World.Size,
		BodySize:        c.World.BodySize,
		MaxSpeed:        s.MaxSpeed,
		Accel:           s.Accel,
		BrakeAccel:      s.BrakeAccel,
		CoastDrag:       s.CoastDrag,
		ActiveDrag:      s.ActiveDrag,
		TurnSlow:        s.TurnSlow,
		Grip:            s.Grip,
		TurnRateAtRest:  steer.Radians(s.TurnRateAtRest),
		TurnRateAtSpeed: steer.Radians(s.TurnRateAtSpeed),
		CruiseSpeed:     s.CruiseSpeed,
		ArrivalRadius:   s.ArrivalRadius,
		AlignTolerance:  steer.Radians(s.AlignTolerance),
	}
}
