package config

// Default configuration values.
const (
	DefaultStoreFile         = ".dmaic/state.db"
	DefaultSnapshotDir       = ".dmaic/snapshots"
	DefaultOutput            = "text"
	DefaultPort              = 8765
	DefaultSessionMaxAgeDays = 30
)

// ConfigFileName is the primary config file name; ConfigFileNameAlt is the
// accepted alternate extension.
const (
	ConfigFileName    = "dmaic.yaml"
	ConfigFileNameAlt = "dmaic.yml"
)
