package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/routing"
)

// Config is the global application configuration
var Config AppConfig

// DefaultPort is used when neither config.yml nor PORT sets one.
const DefaultPort = 16181

// Default returns the configuration used for missing values.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Port: DefaultPort},
		Network: NetworkConfig{Source: "file", Path: "network.yml"},
		Routing: RoutingConfig{
			SnapThresholdMeters:            routing.DefaultSnapThresholdKM * 1000,
			DestinationSnapThresholdMeters: routing.DefaultDestinationSnapThresholdKM * 1000,
			CorridorMeters:                 routing.DefaultCorridorKM * 1000,
			WalkingSpeedKMH:                routing.DefaultWalkingSpeedKMH,
			TransitSpeedKMH:                routing.DefaultTransitSpeedKMH,
		},
		Feed:      FeedConfig{Kind: "none", ReadIntervalMS: 10000, TimeoutMS: 5000},
		Codespace: "TRAM",
	}
}

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	var err error
	for _, p := range paths {
		if err = LoadAppConfigFrom(p); err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return err
}

// LoadAppConfigFrom loads the configuration at path into Config.
func LoadAppConfigFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Config = cfg
	return nil
}

// Parse decodes data over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	fillDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for sections written but left empty.
func fillDefaults(cfg *AppConfig) {
	d := Default()
	if cfg.Server.Port == 0 {
		cfg.Server.Port = d.Server.Port
	}
	if cfg.Network.Source == "" {
		cfg.Network.Source = d.Network.Source
	}
	if cfg.Feed.Kind == "" {
		cfg.Feed.Kind = d.Feed.Kind
	}
	if cfg.Feed.ReadIntervalMS == 0 {
		cfg.Feed.ReadIntervalMS = d.Feed.ReadIntervalMS
	}
	if cfg.Codespace == "" {
		cfg.Codespace = d.Codespace
	}
}

func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("TRAMLINE_DATABASE_URL"); v != "" {
		cfg.Network.DatabaseURL = v
	}
	if v := os.Getenv("TRAMLINE_AMQP_URL"); v != "" {
		cfg.Feed.AMQPURL = v
	}
	if v := os.Getenv("TRAMLINE_VEHICLE_POSITIONS_URL"); v != "" {
		cfg.Feed.VehiclePositionsURL = v
	}
	return nil
}

// Validate checks struct tags and the rules that span fields.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	switch cfg.Network.Source {
	case "postgres":
		if cfg.Network.DatabaseURL == "" {
			return errors.New("network.databaseURL is required for the postgres source")
		}
	default:
		if cfg.Network.Path == "" {
			return fmt.Errorf("network.path is required for the %s source", cfg.Network.Source)
		}
	}
	switch cfg.Feed.Kind {
	case "gtfsrt":
		if cfg.Feed.VehiclePositionsURL == "" {
			return errors.New("feed.vehiclePositionsURL is required for the gtfsrt feed")
		}
	case "amqp":
		if cfg.Feed.AMQPURL == "" {
			return errors.New("feed.amqpURL is required for the amqp feed")
		}
	}
	return nil
}

// Options converts the routing section to routing options. Zero values fall
// back to the routing defaults.
func (r RoutingConfig) Options() routing.Options {
	opts := routing.Options{
		Snap: routing.SnapOptions{
			SnapThresholdKM:            r.SnapThresholdMeters / 1000,
			DestinationSnapThresholdKM: r.DestinationSnapThresholdMeters / 1000,
		},
		CorridorKM:      r.CorridorMeters / 1000,
		WalkingSpeedKMH: r.WalkingSpeedKMH,
		TransitSpeedKMH: r.TransitSpeedKMH,
	}
	for _, c := range r.LinePriority {
		opts.LinePriority = append(opts.LinePriority, network.LineColor(c))
	}
	return opts
}
