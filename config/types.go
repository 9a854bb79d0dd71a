package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// NetworkConfig tells where stations and line tables are read from
type NetworkConfig struct {
	Source       string            `yaml:"source" validate:"oneof=file gtfs sqlite postgres"`
	Path         string            `yaml:"path"`        // network file, GTFS zip/URL or SQLite file
	DatabaseURL  string            `yaml:"databaseURL"` // postgres only
	CachePath    string            `yaml:"cachePath"`   // optional gob cache of the loaded network
	ColorByRoute map[string]string `yaml:"colorByRoute"`
}

// RoutingConfig contains journey composition thresholds and speeds
type RoutingConfig struct {
	SnapThresholdMeters            float64  `yaml:"snapThresholdMeters" validate:"gte=0"`
	DestinationSnapThresholdMeters float64  `yaml:"destinationSnapThresholdMeters" validate:"gte=0"`
	CorridorMeters                 float64  `yaml:"corridorMeters" validate:"gte=0"`
	WalkingSpeedKMH                float64  `yaml:"walkingSpeedKMH" validate:"gte=0"`
	TransitSpeedKMH                float64  `yaml:"transitSpeedKMH" validate:"gte=0"`
	LinePriority                   []string `yaml:"linePriority"`
}

// FeedConfig contains live vehicle feed configuration
type FeedConfig struct {
	Kind                string   `yaml:"kind" validate:"oneof=none gtfsrt amqp"`
	VehiclePositionsURL string   `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	ReadIntervalMS      int      `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int      `yaml:"timeoutMS" validate:"gte=0"`
	AMQPURL             string   `yaml:"amqpURL" validate:"omitempty,url"`
	Queue               string   `yaml:"queue"`
	PlaceholderIDs      []string `yaml:"placeholderIDs"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig  `yaml:"server"`
	Network   NetworkConfig `yaml:"network"`
	Routing   RoutingConfig `yaml:"routing"`
	Feed      FeedConfig    `yaml:"feed"`
	Codespace string        `yaml:"codespace"`
}
