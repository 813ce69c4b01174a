package models

import (
	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// LedgerVersion is the current snapshot schema version
const LedgerVersion = "1.0.0"

// LedgerState is the persisted snapshot of the registry and all its vaults
type LedgerState struct {
	Version  string          `json:"version"`
	Registry *RegistryRecord `json:"registry"`
	Payouts  []*PayoutRecord `json:"payouts"`
}

// RegistryRecord represents the vault directory for persistence
type RegistryRecord struct {
	Address  common.Address `json:"address"`
	Nonce    uint64         `json:"nonce"`
	Sequence uint64         `json:"sequence"`
	Vaults   []*VaultRecord `json:"vaults"`
}

// VaultRecord represents a vault for persistence. Amounts are decimal wei strings.
// Reserved funds are not stored; they are recomputed from pending withdrawals.
type VaultRecord struct {
	Address   common.Address    `json:"address"`
	Name      string            `json:"name"`
	Members   []common.Address  `json:"members"`
	Balance   string            `json:"balance"`
	Sequence  uint64            `json:"sequence"`
	Proposals []*ProposalRecord `json:"proposals"`
}

// ProposalRecord represents a proposal for persistence
type ProposalRecord struct {
	ID           uint64                `json:"id"`
	Type         domain.ProposalType   `json:"type"`
	Proposer     common.Address        `json:"proposer"`
	Description  string                `json:"description,omitempty"`
	Recipient    common.Address        `json:"recipient,omitempty"`
	Amount       string                `json:"amount,omitempty"`
	NewMember    common.Address        `json:"newMember,omitempty"`
	VotesFor     []common.Address      `json:"votesFor"`
	VotesAgainst []common.Address      `json:"votesAgainst"`
	Status       domain.ProposalStatus `json:"status"`
}

// PayoutRecord tracks funds credited to a withdrawal recipient
type PayoutRecord struct {
	Recipient common.Address `json:"recipient"`
	Total     string         `json:"total"`
	Count     uint64         `json:"count"`
}
