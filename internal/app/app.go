package app

import (
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Vaults
	CreateVault *usecase.CreateVault
	ListVaults  *usecase.ListVaults
	ShowVault   *usecase.ShowVault
	Deposit     *usecase.Deposit

	// Proposals
	ProposeWithdrawal *usecase.ProposeWithdrawal
	ProposeAddMember  *usecase.ProposeAddMember
	CastVote          *usecase.CastVote
	ExecuteProposal   *usecase.ExecuteProposal
	ShowProposal      *usecase.ShowProposal
	ListProposals     *usecase.ListProposals

	// History
	ListEvents  *usecase.ListEvents
	ListPayouts *usecase.ListPayouts
	ApplyScript *usecase.ApplyScript

	// Local config
	ShowConfig   *usecase.ShowConfig
	SetConfig    *usecase.SetConfig
	RemoveConfig *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	createVault *usecase.CreateVault,
	listVaults *usecase.ListVaults,
	showVault *usecase.ShowVault,
	deposit *usecase.Deposit,
	proposeWithdrawal *usecase.ProposeWithdrawal,
	proposeAddMember *usecase.ProposeAddMember,
	castVote *usecase.CastVote,
	executeProposal *usecase.ExecuteProposal,
	showProposal *usecase.ShowProposal,
	listProposals *usecase.ListProposals,
	listEvents *usecase.ListEvents,
	listPayouts *usecase.ListPayouts,
	applyScript *usecase.ApplyScript,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) *App {
	return &App{
		Config:            cfg,
		CreateVault:       createVault,
		ListVaults:        listVaults,
		ShowVault:         showVault,
		Deposit:           deposit,
		ProposeWithdrawal: proposeWithdrawal,
		ProposeAddMember:  proposeAddMember,
		CastVote:          castVote,
		ExecuteProposal:   executeProposal,
		ShowProposal:      showProposal,
		ListProposals:     listProposals,
		ListEvents:        listEvents,
		ListPayouts:       listPayouts,
		ApplyScript:       applyScript,
		ShowConfig:        showConfig,
		SetConfig:         setConfig,
		RemoveConfig:      removeConfig,
	}
}
