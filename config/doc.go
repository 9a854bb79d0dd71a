// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, completed with defaults,
// overridden from the environment (PORT, TRAMLINE_DATABASE_URL,
// TRAMLINE_AMQP_URL, TRAMLINE_VEHICLE_POSITIONS_URL) and validated using
// struct tags.
package config
