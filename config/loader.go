package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig loads and validates the application configuration.
// Paths are tried in order; the first readable file wins. Environment
// variables override the connection-style settings afterwards.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 16182
	}
	if c.GTFSRT.RefreshIntervalSec == 0 {
		c.GTFSRT.RefreshIntervalSec = 15
	}
	if c.Planner.WalkRadiusMeters == 0 {
		c.Planner.WalkRadiusMeters = 800
	}
	if c.Planner.WalkSpeedMPS == 0 {
		c.Planner.WalkSpeedMPS = 1.1
	}
	if c.Planner.SimilarityThresholdMinutes == 0 {
		c.Planner.SimilarityThresholdMinutes = 1
	}
	if c.Planner.MaxAlternatives == 0 {
		c.Planner.MaxAlternatives = 2
	}
}

// applyEnv lets deployments keep DSNs and broker URLs out of the YAML.
func (c *AppConfig) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Static.DatabaseURL = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Server.MetricsAddr = v
	}
	if v := os.Getenv("OSRM_BASE_URL"); v != "" {
		c.Directions.OSRMBaseURL = v
	}
}
