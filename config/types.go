package config

// ServerConfig contains API server configuration.
type ServerConfig struct {
	Port        int    `yaml:"port" validate:"gt=0"`
	MetricsAddr string `yaml:"metricsAddr"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration.
type GTFSRTConfig struct {
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	RefreshIntervalSec  int    `yaml:"refreshIntervalSec" validate:"gte=0"`
}

// StaticConfig locates the static network topology.
type StaticConfig struct {
	// DatabaseURL is a Postgres DSN; empty disables the DB loader.
	DatabaseURL string `yaml:"databaseURL"`
	// FilePath points at a JSON routes file used when no database is
	// configured (small deployments, tests).
	FilePath string `yaml:"filePath"`
}

// PlannerConfig holds the planner's policy constants. They carry no
// physical derivation; tune per deployment.
type PlannerConfig struct {
	WalkRadiusMeters           float64 `yaml:"walkRadiusMeters" validate:"gte=0"`
	WalkSpeedMPS               float64 `yaml:"walkSpeedMPS" validate:"gte=0"`
	SimilarityThresholdMinutes float64 `yaml:"similarityThresholdMinutes" validate:"gte=0"`
	MaxAlternatives            int     `yaml:"maxAlternatives" validate:"gte=0"`
}

// DirectionsConfig configures the walking-directions provider.
type DirectionsConfig struct {
	OSRMBaseURL string `yaml:"osrmBaseURL" validate:"omitempty,url"`
}

// NATSConfig configures the optional vehicle fan-out.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server" validate:"required"`
	GTFSRT     GTFSRTConfig     `yaml:"gtfsrt"`
	Static     StaticConfig     `yaml:"static"`
	Planner    PlannerConfig    `yaml:"planner"`
	Directions DirectionsConfig `yaml:"directions"`
	NATS       NATSConfig       `yaml:"nats"`
}
