// Package config handles loading and validating the acquisition daemon configuration.
//
// This package manages:
//   - Built-in defaults that reproduce the device's fixed behaviour
//   - Loading optional overrides from a YAML file
//   - Loading a .env file and overriding with environment variables
//   - Validation of every section in one pass
//
// The daemon is expected to run with no configuration at all. A file is only
// needed to move the sensors to another bus, point ingestion somewhere else,
// or switch on the status server.
//
// Security Considerations:
//   - Tokens and broker passwords should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Ingest.Transport)
package config
