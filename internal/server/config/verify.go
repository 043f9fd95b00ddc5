// Package config defines the server configuration structure.
package config

import (
	"errors"
	"os"
	"path/filepath"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifyInventory(&cfg.Inventory); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}

	// TLS is all or nothing.
	hasCert := cfg.HTTP.TLSCertFile != ""
	hasKey := cfg.HTTP.TLSKeyFile != ""
	if hasCert != hasKey {
		return errors.New("server.http.tls_cert_file and tls_key_file must be set together")
	}
	if hasCert {
		if _, err := os.Stat(cfg.HTTP.TLSCertFile); err != nil {
			return errors.New("cannot read TLS certificate: " + err.Error())
		}
		if _, err := os.Stat(cfg.HTTP.TLSKeyFile); err != nil {
			return errors.New("cannot read TLS key: " + err.Error())
		}
	}

	if cfg.HTTP.RateLimit < 0 {
		return errors.New("server.http.ratelimit must not be negative")
	}

	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.File == "" {
		return errors.New("storage.file is required")
	}

	// Check if the parent directory exists or can be created
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0750); err != nil {
		return errors.New("cannot create storage directory: " + err.Error())
	}

	return nil
}

func verifyInventory(cfg *InventorySection) error {
	if cfg.Threshold < 0 {
		return errors.New("inventory.threshold must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of: debug, info, warn, error")
	}

	switch cfg.Format {
	case "json", "text":
	default:
		return errors.New("log.format must be one of: json, text")
	}

	return nil
}
