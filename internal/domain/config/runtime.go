package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Identity settings
	From  common.Address // zero if not specified
	Vault common.Address // default vault, zero if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Config source tracking
	ConfigSource string // path of coperacha.toml, empty when running without one

	// Resolved project configuration
	Registry            common.Address
	Accounts            *AddressBook
	RejectingRecipients []common.Address
}
