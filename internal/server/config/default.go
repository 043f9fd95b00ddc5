// Package config defines the server configuration structure.
package config

// Default configuration values.
const (
	DefaultHTTPAddr = ":3002"

	DefaultStorageFile = "/data/inventory.json"

	DefaultLowStockThreshold = 10

	DefaultServiceName     = "stockd"
	DefaultMetricNamespace = "stockd"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:      DefaultHTTPAddr,
				RateLimit: 0,
				Audit:     true,
			},
		},
		Storage: StorageSection{
			File: DefaultStorageFile,
		},
		Inventory: InventorySection{
			Threshold: DefaultLowStockThreshold,
		},
		Telemetry: TelemetrySection{
			Service:   DefaultServiceName,
			Namespace: DefaultMetricNamespace,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
