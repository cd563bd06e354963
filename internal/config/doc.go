// Package config provides centralized configuration management for the
// production report analyzer. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PCREPORT_* for namespacing:
//
//	PCREPORT_SERVER_PORT=8080
//	PCREPORT_PATHS_INPUT_DIR=reports
//	PCREPORT_PROCESSING_WORKERS=4
//	PCREPORT_LOGGING_LEVEL=info
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
