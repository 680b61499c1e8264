// Package config provides configuration management for the IP list automation.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults are declared with `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: run history database (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket for inputs and run artifacts
//   - Log: Logging level and format
//   - Reconcile: naming, availability zones, environment preference and thresholds
//
// Nested keys map to upper-case environment variables joined by underscores,
// e.g. reconcile.stale_days is read from RECONCILE_STALE_DAYS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	spec := cfg.Reconcile.Spec(resolver, nil)
package config
