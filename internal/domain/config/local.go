package config

// LocalConfig represents the local .brevis/config.local.json settings
type LocalConfig struct {
	Network string `json:"network,omitempty"`
}

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Network: "localhost",
	}
}
