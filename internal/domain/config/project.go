package config

// ProjectConfig represents the coperacha.toml file
type ProjectConfig struct {
	Registry RegistryConfig    `toml:"registry"`
	Accounts map[string]string `toml:"accounts"`
	Payouts  PayoutsConfig     `toml:"payouts"`
}

// RegistryConfig configures the vault registry
type RegistryConfig struct {
	Address string `toml:"address,omitempty"`
}

// PayoutsConfig configures withdrawal payouts
type PayoutsConfig struct {
	// Reject lists recipients (addresses or account aliases) that refuse incoming funds
	Reject []string `toml:"reject,omitempty"`
}
