// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct
// tags. Environment variables (optionally from a .env file) override
// the connection-style settings so deployments can keep secrets out of
// the YAML.
package config
