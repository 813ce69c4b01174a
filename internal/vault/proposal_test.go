package vault

import (
	"math/big"
	"testing"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredVotes(t *testing.T) {
	tests := []struct {
		members  int
		required int
	}{
		{members: 1, required: 1},
		{members: 2, required: 2},
		{members: 3, required: 2},
		{members: 4, required: 3},
		{members: 5, required: 3},
		{members: 6, required: 4},
		{members: 7, required: 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.required, RequiredVotes(tt.members), "members=%d", tt.members)
	}
}

func TestProposal_Tally(t *testing.T) {
	addr := func(i int) common.Address {
		return common.BigToAddress(big.NewInt(int64(i + 1)))
	}

	tests := []struct {
		name     string
		members  int
		extraFor int
		against  int
		expected Outcome
	}{
		{name: "single member auto executes", members: 1, expected: OutcomeApproved},
		{name: "two members waits for second", members: 2, expected: OutcomeUndecided},
		{name: "two members one against", members: 2, against: 1, expected: OutcomeRejected},
		{name: "three members second vote approves", members: 3, extraFor: 1, expected: OutcomeApproved},
		{name: "three members one against still open", members: 3, against: 1, expected: OutcomeUndecided},
		{name: "three members two against", members: 3, against: 2, expected: OutcomeRejected},
		{name: "four members two for is not a majority", members: 4, extraFor: 1, expected: OutcomeUndecided},
		{name: "four members split two-two", members: 4, extraFor: 1, against: 2, expected: OutcomeRejected},
		{name: "four members one for two against", members: 4, against: 2, expected: OutcomeRejected},
		{name: "four members three for", members: 4, extraFor: 2, expected: OutcomeApproved},
		{name: "five members two against open", members: 5, against: 2, expected: OutcomeUndecided},
		{name: "five members three against", members: 5, against: 3, expected: OutcomeRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProposal(0, addr(0), "", AddMember{NewMember: addr(100)})
			next := 1
			for i := 0; i < tt.extraFor; i++ {
				require.NoError(t, p.castVote(addr(next), true))
				next++
			}
			for i := 0; i < tt.against; i++ {
				require.NoError(t, p.castVote(addr(next), false))
				next++
			}
			assert.Equal(t, tt.expected, p.Tally(tt.members))
		})
	}
}

func TestProposal_TallyIgnoresDecided(t *testing.T) {
	p := newProposal(0, common.HexToAddress("0x01"), "", AddMember{NewMember: common.HexToAddress("0x02")})
	p.Status = domain.ProposalStatusExecuted
	assert.Equal(t, OutcomeUndecided, p.Tally(1))
}

func TestProposal_ImplicitProposerVote(t *testing.T) {
	proposer := common.HexToAddress("0x01")
	p := newProposal(3, proposer, "rent", Withdrawal{Recipient: common.HexToAddress("0x09"), Amount: big.NewInt(1)})

	assert.Equal(t, uint64(3), p.ID)
	assert.Equal(t, domain.ProposalStatusPending, p.Status)
	assert.Equal(t, []common.Address{proposer}, p.VotesFor())
	assert.Empty(t, p.VotesAgainst())
	assert.True(t, p.HasVoted(proposer))
	assert.ErrorIs(t, p.castVote(proposer, false), domain.ErrAlreadyVoted)
	assert.Len(t, p.VotesAgainst(), 0)
}
