package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleConfig is the annotated configuration written by `sessiongate init`.
const sampleConfig = `# SessionGate configuration
#
# Every option can be overridden with an environment variable using the
# SESSIONGATE_ prefix, e.g. SESSIONGATE_LOGGING_LEVEL=DEBUG.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: INFO
  # Output format: text or json
  format: text
  # Destination: stdout, stderr, or a file path
  output: stderr

telemetry:
  # OpenTelemetry distributed tracing (OTLP over gRPC)
  enabled: false
  endpoint: localhost:4317
  insecure: true
  sample_rate: 1.0

metrics:
  # Prometheus metrics collection. Exposed on the ops server at /metrics.
  enabled: false

api:
  # Ops HTTP server: health probes, metrics, restriction catalog
  enabled: true
  port: 8134
  shutdown_timeout: 30s

groups:
  # Comma-separated group names. Members of these groups inherit the
  # corresponding restriction regardless of their own attributes.
  read_only: ""
  disallow_concurrent: ""
`

// InitConfig writes a sample configuration file to the default location.
//
// Returns the path of the created file. Refuses to overwrite an existing
// file unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// InitConfigToPath writes a sample configuration file to the given path,
// creating parent directories as needed.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
