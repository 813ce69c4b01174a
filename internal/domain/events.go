package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type EventType string

const (
	EventTypeVaultCreated       EventType = "VaultCreated"
	EventTypeDepositMade        EventType = "DepositMade"
	EventTypeProposalCreated    EventType = "ProposalCreated"
	EventTypeVoteCasted         EventType = "VoteCasted"
	EventTypeProposalExecuted   EventType = "ProposalExecuted"
	EventTypeProposalRejected   EventType = "ProposalRejected"
	EventTypeWithdrawalExecuted EventType = "WithdrawalExecuted"
	EventTypeMemberAdded        EventType = "MemberAdded"
)

// EventTypes lists every event in declaration order
var EventTypes = []EventType{
	EventTypeVaultCreated,
	EventTypeDepositMade,
	EventTypeProposalCreated,
	EventTypeVoteCasted,
	EventTypeProposalExecuted,
	EventTypeProposalRejected,
	EventTypeWithdrawalExecuted,
	EventTypeMemberAdded,
}

// ParseEventType matches an event name case-insensitively
func ParseEventType(s string) (EventType, error) {
	for _, t := range EventTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown event %q", s)
}

// ParsedEvent is the interface for all vault and registry events
type ParsedEvent interface {
	ContractEventName() string
	String() string
}

// EventLog is an emitted event positioned in the ordered log.
// Sequence is the block-equivalent operation counter of the emitting
// contract, Index the position of the event inside that operation.
type EventLog struct {
	Emitter  common.Address
	Sequence uint64
	Index    uint
	TxHash   common.Hash
	Event    ParsedEvent
}

func (l EventLog) String() string {
	return fmt.Sprintf("#%d.%d %s", l.Sequence, l.Index, l.Event.String())
}

// EventFilter narrows event history queries
type EventFilter struct {
	Emitter *common.Address
	Name    EventType
	Limit   int
}

// VaultCreatedEvent is emitted by the registry when a vault is created
type VaultCreatedEvent struct {
	Vault   common.Address
	Name    string
	Members []common.Address
}

func (VaultCreatedEvent) ContractEventName() string {
	return string(EventTypeVaultCreated)
}

func (e *VaultCreatedEvent) String() string {
	return fmt.Sprintf("%s: vault=%s, name=%q, members=%d",
		e.ContractEventName(), shortHex(e.Vault), e.Name, len(e.Members))
}

// DepositMadeEvent records funds entering a vault
type DepositMadeEvent struct {
	Depositor common.Address
	Amount    *big.Int
}

func (DepositMadeEvent) ContractEventName() string {
	return string(EventTypeDepositMade)
}

func (e *DepositMadeEvent) String() string {
	return fmt.Sprintf("%s: depositor=%s, amount=%s",
		e.ContractEventName(), shortHex(e.Depositor), e.Amount)
}

// ProposalCreatedEvent records a new proposal
type ProposalCreatedEvent struct {
	ProposalID   uint64
	ProposalType ProposalType
	Proposer     common.Address
}

func (ProposalCreatedEvent) ContractEventName() string {
	return string(EventTypeProposalCreated)
}

func (e *ProposalCreatedEvent) String() string {
	return fmt.Sprintf("%s: id=%d, type=%s, proposer=%s",
		e.ContractEventName(), e.ProposalID, e.ProposalType, shortHex(e.Proposer))
}

// VoteCastedEvent records an explicit vote
type VoteCastedEvent struct {
	ProposalID uint64
	Voter      common.Address
	InFavor    bool
}

func (VoteCastedEvent) ContractEventName() string {
	return string(EventTypeVoteCasted)
}

func (e *VoteCastedEvent) String() string {
	return fmt.Sprintf("%s: id=%d, voter=%s, inFavor=%t",
		e.ContractEventName(), e.ProposalID, shortHex(e.Voter), e.InFavor)
}

type ProposalExecutedEvent struct {
	ProposalID uint64
}

func (ProposalExecutedEvent) ContractEventName() string {
	return string(EventTypeProposalExecuted)
}

func (e *ProposalExecutedEvent) String() string {
	return fmt.Sprintf("%s: id=%d", e.ContractEventName(), e.ProposalID)
}

type ProposalRejectedEvent struct {
	ProposalID uint64
}

func (ProposalRejectedEvent) ContractEventName() string {
	return string(EventTypeProposalRejected)
}

func (e *ProposalRejectedEvent) String() string {
	return fmt.Sprintf("%s: id=%d", e.ContractEventName(), e.ProposalID)
}

// WithdrawalExecutedEvent records funds leaving a vault
type WithdrawalExecutedEvent struct {
	Recipient common.Address
	Amount    *big.Int
}

func (WithdrawalExecutedEvent) ContractEventName() string {
	return string(EventTypeWithdrawalExecuted)
}

func (e *WithdrawalExecutedEvent) String() string {
	return fmt.Sprintf("%s: recipient=%s, amount=%s",
		e.ContractEventName(), shortHex(e.Recipient), e.Amount)
}

type MemberAddedEvent struct {
	NewMember common.Address
}

func (MemberAddedEvent) ContractEventName() string {
	return string(EventTypeMemberAdded)
}

func (e *MemberAddedEvent) String() string {
	return fmt.Sprintf("%s: member=%s", e.ContractEventName(), shortHex(e.NewMember))
}

func shortHex(addr common.Address) string {
	return addr.Hex()[:10] + "..."
}
