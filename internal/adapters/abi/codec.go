package abi

import (
	"fmt"
	"math/big"
	"strings"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/coperacha/coperacha-cli/internal/domain"
)

// LogCodec converts domain event logs to and from EVM logs
type LogCodec struct {
	abi ethabi.ABI
}

// NewLogCodec creates a codec for the vault events ABI
func NewLogCodec() (*LogCodec, error) {
	parsed, err := ethabi.JSON(strings.NewReader(VaultEventsABI))
	if err != nil {
		return nil, fmt.Errorf("invalid vault events ABI: %w", err)
	}
	return &LogCodec{abi: parsed}, nil
}

// EventID returns the topic hash of an event
func (c *LogCodec) EventID(name domain.EventType) (common.Hash, error) {
	event, ok := c.abi.Events[string(name)]
	if !ok {
		return common.Hash{}, fmt.Errorf("event %s not found", name)
	}
	return event.ID, nil
}

// Encode packs a domain log into an EVM log. Sequence maps to the block
// number and Index to the log index.
func (c *LogCodec) Encode(log domain.EventLog) (*types.Log, error) {
	name := log.Event.ContractEventName()
	event, ok := c.abi.Events[name]
	if !ok {
		return nil, fmt.Errorf("event %s not found", name)
	}

	indexed, data, err := eventArgs(log.Event)
	if err != nil {
		return nil, err
	}

	query := make([][]interface{}, len(indexed))
	for i, v := range indexed {
		query[i] = []interface{}{v}
	}
	rules, err := ethabi.MakeTopics(query...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s topics: %w", name, err)
	}

	topics := []common.Hash{event.ID}
	for _, r := range rules {
		topics = append(topics, r[0])
	}

	packed, err := event.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s data: %w", name, err)
	}

	return &types.Log{
		Address:     log.Emitter,
		Topics:      topics,
		Data:        packed,
		BlockNumber: log.Sequence,
		TxHash:      log.TxHash,
		Index:       log.Index,
	}, nil
}

// eventArgs splits an event into its indexed and non-indexed values in ABI order
func eventArgs(ev domain.ParsedEvent) (indexed, data []interface{}, err error) {
	switch e := ev.(type) {
	case *domain.VaultCreatedEvent:
		return []interface{}{e.Vault}, []interface{}{e.Name, e.Members}, nil
	case *domain.DepositMadeEvent:
		return []interface{}{e.Depositor}, []interface{}{e.Amount}, nil
	case *domain.ProposalCreatedEvent:
		return []interface{}{proposalID(e.ProposalID), e.Proposer}, []interface{}{uint8(e.ProposalType)}, nil
	case *domain.VoteCastedEvent:
		return []interface{}{proposalID(e.ProposalID), e.Voter}, []interface{}{e.InFavor}, nil
	case *domain.ProposalExecutedEvent:
		return []interface{}{proposalID(e.ProposalID)}, nil, nil
	case *domain.ProposalRejectedEvent:
		return []interface{}{proposalID(e.ProposalID)}, nil, nil
	case *domain.WithdrawalExecutedEvent:
		return []interface{}{e.Recipient}, []interface{}{e.Amount}, nil
	case *domain.MemberAddedEvent:
		return []interface{}{e.NewMember}, nil, nil
	}
	return nil, nil, fmt.Errorf("unsupported event %T", ev)
}

func proposalID(id uint64) *big.Int {
	return new(big.Int).SetUint64(id)
}

// Decode unpacks an EVM log produced by Encode
func (c *LogCodec) Decode(log *types.Log) (domain.EventLog, error) {
	if len(log.Topics) == 0 {
		return domain.EventLog{}, fmt.Errorf("log has no topics")
	}
	event, err := c.abi.EventByID(log.Topics[0])
	if err != nil {
		return domain.EventLog{}, fmt.Errorf("unknown event signature %s: %w", log.Topics[0].Hex(), err)
	}

	values := make(map[string]interface{})
	if len(log.Data) > 0 {
		if err := c.abi.UnpackIntoMap(values, event.Name, log.Data); err != nil {
			return domain.EventLog{}, fmt.Errorf("failed to decode %s data: %w", event.Name, err)
		}
	}

	var indexed ethabi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := ethabi.ParseTopicsIntoMap(values, indexed, log.Topics[1:]); err != nil {
		return domain.EventLog{}, fmt.Errorf("failed to decode %s topics: %w", event.Name, err)
	}

	parsed, err := buildEvent(domain.EventType(event.Name), values)
	if err != nil {
		return domain.EventLog{}, err
	}

	return domain.EventLog{
		Emitter:  log.Address,
		Sequence: log.BlockNumber,
		Index:    log.Index,
		TxHash:   log.TxHash,
		Event:    parsed,
	}, nil
}

// fields reads typed values out of an unpacked map, remembering the first failure
type fields struct {
	values map[string]interface{}
	err    error
}

func (f *fields) address(key string) common.Address {
	v, ok := f.values[key].(common.Address)
	if !ok {
		f.fail(key)
	}
	return v
}

func (f *fields) bigInt(key string) *big.Int {
	v, ok := f.values[key].(*big.Int)
	if !ok {
		f.fail(key)
		return new(big.Int)
	}
	return v
}

func (f *fields) uint64(key string) uint64 {
	v := f.bigInt(key)
	if !v.IsUint64() {
		f.fail(key)
	}
	return v.Uint64()
}

func (f *fields) fail(key string) {
	if f.err == nil {
		f.err = fmt.Errorf("field %s has unexpected type %T", key, f.values[key])
	}
}

func buildEvent(name domain.EventType, values map[string]interface{}) (domain.ParsedEvent, error) {
	f := &fields{values: values}
	var ev domain.ParsedEvent

	switch name {
	case domain.EventTypeVaultCreated:
		label, _ := values["name"].(string)
		members, ok := values["members"].([]common.Address)
		if !ok {
			f.fail("members")
		}
		ev = &domain.VaultCreatedEvent{Vault: f.address("vault"), Name: label, Members: members}
	case domain.EventTypeDepositMade:
		ev = &domain.DepositMadeEvent{Depositor: f.address("depositor"), Amount: f.bigInt("amount")}
	case domain.EventTypeProposalCreated:
		kind, ok := values["proposalType"].(uint8)
		if !ok {
			f.fail("proposalType")
		}
		ev = &domain.ProposalCreatedEvent{
			ProposalID:   f.uint64("proposalId"),
			ProposalType: domain.ProposalType(kind),
			Proposer:     f.address("proposer"),
		}
	case domain.EventTypeVoteCasted:
		inFavor, ok := values["inFavor"].(bool)
		if !ok {
			f.fail("inFavor")
		}
		ev = &domain.VoteCastedEvent{ProposalID: f.uint64("proposalId"), Voter: f.address("voter"), InFavor: inFavor}
	case domain.EventTypeProposalExecuted:
		ev = &domain.ProposalExecutedEvent{ProposalID: f.uint64("proposalId")}
	case domain.EventTypeProposalRejected:
		ev = &domain.ProposalRejectedEvent{ProposalID: f.uint64("proposalId")}
	case domain.EventTypeWithdrawalExecuted:
		ev = &domain.WithdrawalExecutedEvent{Recipient: f.address("recipient"), Amount: f.bigInt("amount")}
	case domain.EventTypeMemberAdded:
		ev = &domain.MemberAddedEvent{NewMember: f.address("newMember")}
	default:
		return nil, fmt.Errorf("unsupported event %s", name)
	}

	if f.err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, f.err)
	}
	return ev, nil
}
