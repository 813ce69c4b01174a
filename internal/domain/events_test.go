package domain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	for _, et := range EventTypes {
		got, err := ParseEventType(string(et))
		require.NoError(t, err)
		assert.Equal(t, et, got)
	}

	got, err := ParseEventType(" votecasted ")
	require.NoError(t, err)
	assert.Equal(t, EventTypeVoteCasted, got)

	_, err = ParseEventType("Transfer")
	assert.Error(t, err)
}

func TestEvent_Strings(t *testing.T) {
	member := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	tests := []struct {
		event    ParsedEvent
		name     EventType
		contains string
	}{
		{event: &VaultCreatedEvent{Vault: member, Name: "Familia", Members: []common.Address{member}}, name: EventTypeVaultCreated, contains: `name="Familia", members=1`},
		{event: &DepositMadeEvent{Depositor: member, Amount: big.NewInt(7)}, name: EventTypeDepositMade, contains: "amount=7"},
		{event: &ProposalCreatedEvent{ProposalID: 3, ProposalType: ProposalTypeAddMember, Proposer: member}, name: EventTypeProposalCreated, contains: "id=3, type=ADD_MEMBER"},
		{event: &VoteCastedEvent{ProposalID: 1, Voter: member, InFavor: true}, name: EventTypeVoteCasted, contains: "inFavor=true"},
		{event: &ProposalExecutedEvent{ProposalID: 5}, name: EventTypeProposalExecuted, contains: "id=5"},
		{event: &ProposalRejectedEvent{ProposalID: 6}, name: EventTypeProposalRejected, contains: "id=6"},
		{event: &WithdrawalExecutedEvent{Recipient: member, Amount: big.NewInt(9)}, name: EventTypeWithdrawalExecuted, contains: "amount=9"},
		{event: &MemberAddedEvent{NewMember: member}, name: EventTypeMemberAdded, contains: "member=0x00000000..."},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			assert.Equal(t, string(tt.name), tt.event.ContractEventName())
			assert.Contains(t, tt.event.String(), tt.contains)
		})
	}

	log := EventLog{Sequence: 4, Index: 1, Event: &ProposalExecutedEvent{ProposalID: 2}}
	assert.Equal(t, "#4.1 ProposalExecuted: id=2", log.String())
}
