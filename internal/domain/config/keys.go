package config

import "strings"

// ConfigKey names a value settable in the local config
type ConfigKey string

const (
	ConfigKeyNetwork ConfigKey = "network"
)

// ValidConfigKeys returns the keys accepted by `config set` and `config remove`
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{ConfigKeyNetwork}
}

// ParseConfigKey normalizes a user supplied key; ok is false for unknown keys
func ParseConfigKey(key string) (ConfigKey, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "network", "net", "n":
		return ConfigKeyNetwork, true
	}
	return "", false
}
