package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	golog "github.com/tochemey/goakt/v3/log"
	"gopkg.in/yaml.v3"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
)

//go:embed config.schema.json
var configSchema []byte

const schemaURL = "config.schema.json"

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// World Dimensions, centred on the origin
	WorldWidth  float64 `json:"worldWidth" yaml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" yaml:"worldHeight"`

	// Population
	AgentCount int    `json:"agentCount" yaml:"agentCount"`
	Seed       uint64 `json:"seed" yaml:"seed"` // 0 picks a random seed

	// Neighbor search and stepping
	NeighborIndex   string  `json:"neighborIndex" yaml:"neighborIndex"` // scan, grid or rtree
	CellSize        float64 `json:"cellSize" yaml:"cellSize"`           // grid only
	UpdatePolicy    string  `json:"updatePolicy" yaml:"updatePolicy"`   // sequential or snapshot
	Workers         int     `json:"workers" yaml:"workers"`             // snapshot only, 0 = GOMAXPROCS
	InitialVelocity string  `json:"initialVelocity" yaml:"initialVelocity"`

	// Host
	WindowWidth    int    `json:"windowWidth" yaml:"windowWidth"`
	WindowHeight   int    `json:"windowHeight" yaml:"windowHeight"`
	TicksPerSecond int    `json:"ticksPerSecond" yaml:"ticksPerSecond"`
	LogLevel       string `json:"logLevel" yaml:"logLevel"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:      1920,
		WorldHeight:     1080,
		AgentCount:      1250,
		NeighborIndex:   "grid",
		CellSize:        flock.DefaultCellSize,
		UpdatePolicy:    "sequential",
		InitialVelocity: "circle",
		WindowWidth:     800,
		WindowHeight:    600,
		TicksPerSecond:  60,
		LogLevel:        "info",
	}
}

// LoadConfig reads a .json, .yaml/.yml or .toml file, validates it against
// the embedded schema and applies it over DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(b, filepath.Ext(configFile))
}

// ParseConfig is LoadConfig for in-memory content. ext selects the format.
func ParseConfig(data []byte, ext string) (*Config, error) {
	// 1. Normalize every format to JSON
	var err error
	switch strings.ToLower(ext) {
	case ".json", "":
	case ".yaml", ".yml":
		var m map[string]any
		if err = yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: failed to decode yaml: %w", ErrInvalidConfig, err)
		}
		if m == nil {
			m = map[string]any{}
		}
		data, err = json.Marshal(m)
	case ".toml":
		var m map[string]any
		if _, err = toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("%w: failed to decode toml: %w", ErrInvalidConfig, err)
		}
		data, err = json.Marshal(m)
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to normalize config: %w", err)
	}

	// 2. Validate
	sch, err := compileSchema()
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config json: %w", ErrInvalidConfig, err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: validation failed: %w", ErrInvalidConfig, err)
	}

	// 3. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(configSchema)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}

// WorldOptions translates the config into flock options.
func (c *Config) WorldOptions(logger golog.Logger) ([]flock.Option, error) {
	index, err := flock.NewNeighborIndex(c.NeighborIndex, c.CellSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	policy, err := flock.ParseUpdatePolicy(c.UpdatePolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	sampler, err := flock.ParseVelocitySampler(c.InitialVelocity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return []flock.Option{
		flock.WithSeed(c.Seed),
		flock.WithNeighborIndex(index),
		flock.WithUpdatePolicy(policy),
		flock.WithWorkers(c.Workers),
		flock.WithVelocitySampler(sampler),
		flock.WithLogger(logger),
	}, nil
}

// NewWorld builds the world described by the config.
func (c *Config) NewWorld(logger golog.Logger) (*flock.World, error) {
	opts, err := c.WorldOptions(logger)
	if err != nil {
		return nil, err
	}
	return flock.NewWorld(c.WorldWidth, c.WorldHeight, c.AgentCount, opts...)
}

// ParseLogLevel maps a config level name to a goakt log level.
// Unknown values default to info.
func ParseLogLevel(s string) golog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return golog.DebugLevel
	case "warn", "warning":
		return golog.WarningLevel
	case "error":
		return golog.ErrorLevel
	default:
		return golog.InfoLevel
	}
}

// NewLogger returns the zap backed goakt logger used across the host.
func (c *Config) NewLogger() golog.Logger {
	return golog.New(ParseLogLevel(c.LogLevel), os.Stderr)
}
