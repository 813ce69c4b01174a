package config

// LocalConfig represents the local coperacha configuration
type LocalConfig struct {
	From  string `json:"from"`
	Vault string `json:"vault"`
}

// ConfigKey represents a configuration key
type ConfigKey string

const (
	ConfigKeyFrom  ConfigKey = "from"
	ConfigKeyVault ConfigKey = "vault"
)

// DefaultLocalConfig returns the default local configuration
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{}
}

// Get returns the value stored under key
func (c *LocalConfig) Get(key ConfigKey) string {
	switch key {
	case ConfigKeyFrom:
		return c.From
	case ConfigKeyVault:
		return c.Vault
	}
	return ""
}

// Set stores value under key
func (c *LocalConfig) Set(key ConfigKey, value string) {
	switch key {
	case ConfigKeyFrom:
		c.From = value
	case ConfigKeyVault:
		c.Vault = value
	}
}

// ValidConfigKeys returns all valid configuration keys
func ValidConfigKeys() []ConfigKey {
	return []ConfigKey{
		ConfigKeyFrom,
		ConfigKeyVault,
	}
}

// IsValidConfigKey checks if a key is valid
func IsValidConfigKey(key string) bool {
	for _, validKey := range ValidConfigKeys() {
		if string(validKey) == key || (key == "account" && validKey == ConfigKeyFrom) {
			return true
		}
	}
	return false
}

// NormalizeConfigKey normalizes a config key (e.g., "account" -> "from")
func NormalizeConfigKey(key string) ConfigKey {
	if key == "account" {
		return ConfigKeyFrom
	}
	return ConfigKey(key)
}
