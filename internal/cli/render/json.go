package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/bytedance/sonic"
	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/vault"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// AmountJSON carries an amount as exact wei and as ether for display
type AmountJSON struct {
	Wei   string `json:"wei"`
	Ether string `json:"ether"`
}

// VaultJSON is the JSON shape of a vault
type VaultJSON struct {
	Address       common.Address   `json:"address"`
	Name          string           `json:"name"`
	Members       []common.Address `json:"members"`
	Balance       AmountJSON       `json:"balance"`
	Reserved      AmountJSON       `json:"reserved"`
	Available     AmountJSON       `json:"available"`
	ProposalCount uint64           `json:"proposalCount"`
	RequiredVotes int              `json:"requiredVotes"`
}

// ProposalJSON is the JSON shape of a proposal
type ProposalJSON struct {
	ID            uint64                `json:"id"`
	Type          domain.ProposalType   `json:"type"`
	Status        domain.ProposalStatus `json:"status"`
	Proposer      common.Address        `json:"proposer"`
	Description   string                `json:"description,omitempty"`
	Recipient     *common.Address       `json:"recipient,omitempty"`
	Amount        *AmountJSON           `json:"amount,omitempty"`
	NewMember     *common.Address       `json:"newMember,omitempty"`
	VotesFor      []common.Address      `json:"votesFor"`
	VotesAgainst  []common.Address      `json:"votesAgainst"`
	RequiredVotes int                   `json:"requiredVotes"`
}

// EventJSON is the JSON shape of an event log entry
type EventJSON struct {
	Emitter  common.Address `json:"emitter"`
	Sequence uint64         `json:"sequence"`
	Index    uint           `json:"index"`
	TxHash   common.Hash    `json:"txHash"`
	Event    string         `json:"event"`
	Args     interface{}    `json:"args"`
}

func amountJSON(wei *big.Int) AmountJSON {
	if wei == nil {
		wei = new(big.Int)
	}
	return AmountJSON{Wei: wei.String(), Ether: units.FormatEther(wei)}
}

// NewVaultJSON converts a vault view
func NewVaultJSON(v *vault.Info) *VaultJSON {
	if v == nil {
		return nil
	}
	return &VaultJSON{
		Address:       v.Address,
		Name:          v.Name,
		Members:       v.Members,
		Balance:       amountJSON(v.Balance),
		Reserved:      amountJSON(v.Reserved),
		Available:     amountJSON(v.Available),
		ProposalCount: v.ProposalCount,
		RequiredVotes: v.RequiredVotes,
	}
}

// NewProposalJSON converts a proposal view
func NewProposalJSON(p *vault.ProposalInfo) *ProposalJSON {
	if p == nil {
		return nil
	}
	out := &ProposalJSON{
		ID:            p.ID,
		Type:          p.Type,
		Status:        p.Status,
		Proposer:      p.Proposer,
		Description:   p.Description,
		VotesFor:      nonNil(p.VotesFor),
		VotesAgainst:  nonNil(p.VotesAgainst),
		RequiredVotes: p.RequiredVotes,
	}
	switch p.Type {
	case domain.ProposalTypeWithdrawal:
		recipient := p.Recipient
		amount := amountJSON(p.Amount)
		out.Recipient = &recipient
		out.Amount = &amount
	case domain.ProposalTypeAddMember:
		member := p.NewMember
		out.NewMember = &member
	}
	return out
}

// NewProposalsJSON converts a list of proposal views
func NewProposalsJSON(proposals []*vault.ProposalInfo) []*ProposalJSON {
	out := make([]*ProposalJSON, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, NewProposalJSON(p))
	}
	return out
}

// NewEventsJSON converts event logs, keeping the event payload as its args
func NewEventsJSON(logs []domain.EventLog) []*EventJSON {
	out := make([]*EventJSON, 0, len(logs))
	for _, l := range logs {
		out = append(out, &EventJSON{
			Emitter:  l.Emitter,
			Sequence: l.Sequence,
			Index:    l.Index,
			TxHash:   l.TxHash,
			Event:    l.Event.ContractEventName(),
			Args:     l.Event,
		})
	}
	return out
}

func nonNil(addrs []common.Address) []common.Address {
	if addrs == nil {
		return []common.Address{}
	}
	return addrs
}
