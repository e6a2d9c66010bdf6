// Package config loads layered configuration for the dmaic CLI and server:
// defaults, then dmaic.yaml, then DMAIC_* environment variables, then CLI
// flags.
package config

// ServerConfig holds the web server settings.
type ServerConfig struct {
	Port              int    `koanf:"port"`
	SessionSecret     string `koanf:"session_secret"`
	SessionMaxAgeDays int    `koanf:"session_max_age_days"`
	AutoOpen          bool   `koanf:"auto_open"`
}

// SnapshotConfig holds the offline snapshot settings.
type SnapshotConfig struct {
	Dir   string `koanf:"dir"`
	Watch bool   `koanf:"watch"`
}

// Config holds all configuration options.
type Config struct {
	StorePath    string          `koanf:"store_path"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Server       *ServerConfig   `koanf:"server"`
	Snapshot     *SnapshotConfig `koanf:"snapshot"`

	// ProjectRoot is derived at load time, not read from the file.
	ProjectRoot string `koanf:"-"`
}

// GetServer returns the server config with defaults applied for unset
// values.
func (c *Config) GetServer() *ServerConfig {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.SessionMaxAgeDays == 0 {
		c.Server.SessionMaxAgeDays = DefaultSessionMaxAgeDays
	}
	return c.Server
}

// GetSnapshot returns the snapshot config with defaults applied.
func (c *Config) GetSnapshot() *SnapshotConfig {
	if c.Snapshot == nil {
		c.Snapshot = &SnapshotConfig{}
	}
	if c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}
	return c.Snapshot
}
