// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for stockd-server.
type ServerConfig struct {
	Server    ServerSection    `koanf:"server"`
	Storage   StorageSection   `koanf:"storage"`
	Inventory InventorySection `koanf:"inventory"`
	Telemetry TelemetrySection `koanf:"telemetry"`
	Log       LogSection       `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
//
// TLS file paths contain underscores and therefore cannot be set through
// the environment mapping; they are file-only keys.
type HTTPConfig struct {
	Addr        string   `koanf:"addr"`
	RateLimit   int      `koanf:"ratelimit"`
	Audit       bool     `koanf:"audit"`
	CORS        []string `koanf:"cors"`
	TLSCertFile string   `koanf:"tls_cert_file"`
	TLSKeyFile  string   `koanf:"tls_key_file"`
}

// StorageSection configures the inventory file store.
type StorageSection struct {
	// File is the path of the persisted inventory JSON document.
	File string `koanf:"file"`
}

// InventorySection configures inventory accounting.
type InventorySection struct {
	// Threshold is the low-stock cutoff: products with a quantity at or
	// below it count as low stock. Reloadable at runtime through the
	// config watcher.
	Threshold int64 `koanf:"threshold"`
}

// TelemetrySection configures metric identity.
type TelemetrySection struct {
	// Service is the value of the constant "service" label on every metric.
	Service string `koanf:"service"`

	// Namespace is the prefix applied to every metric name.
	Namespace string `koanf:"namespace"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
