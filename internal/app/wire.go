//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/coperacha/coperacha-cli/internal/adapters"
	"github.com/coperacha/coperacha-cli/internal/config"
	"github.com/coperacha/coperacha-cli/internal/logging"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Shared use case plumbing
		usecase.NewLedger,
		usecase.NewVaultResolver,

		// Use cases
		usecase.NewCreateVault,
		usecase.NewListVaults,
		usecase.NewShowVault,
		usecase.NewDeposit,
		usecase.NewProposeWithdrawal,
		usecase.NewProposeAddMember,
		usecase.NewCastVote,
		usecase.NewExecuteProposal,
		usecase.NewShowProposal,
		usecase.NewListProposals,
		usecase.NewListEvents,
		usecase.NewListPayouts,
		usecase.NewApplyScript,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
