package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultConfigContent is written when no config file exists anywhere.
const defaultConfigContent = `# lattice configuration
registry_file: .lattice/registry.yaml
auto_reload: true
auto_reload_debounce: 500
cache_ttl: 60

ui:
  show_generation: true
  show_status_bar: true

theme:
  highlight: "#7C3AED"
  subtle: "#6B7280"
  error: "#EF4444"
  success: "#10B981"

tracing:
  enabled: false
  exporter: file
  sample_rate: 1.0
`

// WriteDefaultConfig creates a default config file at the given path,
// creating parent directories as needed. Existing files are left alone.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigContent), 0644); err != nil { //nolint:gosec // config file is not sensitive
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
