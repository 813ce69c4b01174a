package render

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

var (
	alice = common.HexToAddress("0x0000000000000000000000000000000000000001")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000002")
	shop  = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

func testBook(t *testing.T) *config.AddressBook {
	t.Helper()
	color.NoColor = true
	book, err := config.NewAddressBook(map[string]string{
		"alice": alice.Hex(),
		"bob":   bob.Hex(),
	})
	require.NoError(t, err)
	return book
}

func TestFormatHelpers(t *testing.T) {
	book := testBook(t)

	assert.Equal(t, "Pending", formatStatus(domain.ProposalStatusPending))
	assert.Equal(t, "Executed", formatStatus(domain.ProposalStatusExecuted))
	assert.Equal(t, "Rejected", formatStatus(domain.ProposalStatusRejected))
	assert.Equal(t, "Withdrawal", formatType(domain.ProposalTypeWithdrawal))
	assert.Equal(t, "Add Member", formatType(domain.ProposalTypeAddMember))

	assert.Equal(t, "alice", shortAddress(book, alice))
	assert.Equal(t, "0x0000…0003", shortAddress(book, shop))
	assert.Equal(t, "bob ("+bob.Hex()+")", formatAddress(book, bob))

	assert.Equal(t, "❌ Vault not found", FormatError("failed to resolve: vault not found"))
	assert.Equal(t, "✅ done", FormatSuccess("done"))
}

func TestEventsRenderer(t *testing.T) {
	book := testBook(t)
	var out bytes.Buffer
	r := NewEventsRenderer(&out, book)

	require.NoError(t, r.Render(nil))
	assert.Equal(t, "No events found\n", out.String())

	out.Reset()
	logs := []domain.EventLog{
		{Emitter: shop, Sequence: 1, Event: &domain.DepositMadeEvent{Depositor: alice, Amount: big.NewInt(1_000_000_000_000_000_000)}},
		{Emitter: shop, Sequence: 2, Event: &domain.VoteCastedEvent{ProposalID: 4, Voter: bob, InFavor: false}},
		{Emitter: shop, Sequence: 2, Index: 1, Event: &domain.ProposalRejectedEvent{ProposalID: 4}},
	}
	require.NoError(t, r.Render(logs))
	assert.Contains(t, out.String(), "1 ETH from alice")
	assert.Contains(t, out.String(), "#4 bob against")
	assert.Contains(t, out.String(), "2.1")
	assert.Contains(t, out.String(), "ProposalRejected")
}

func TestProposalRenderer_RenderList(t *testing.T) {
	book := testBook(t)
	var out bytes.Buffer
	r := NewProposalRenderer(&out, book)

	result := &usecase.ListProposalsResult{
		Vault: &vault.Info{Name: "Familia"},
		Proposals: []*vault.ProposalInfo{
			{ID: 0, Type: domain.ProposalTypeWithdrawal, Recipient: shop, Amount: big.NewInt(5e17), Description: "groceries", VotesFor: []common.Address{alice}, RequiredVotes: 2},
			{ID: 1, Type: domain.ProposalTypeAddMember, NewMember: bob, Status: domain.ProposalStatusExecuted, RequiredVotes: 2},
		},
		Summary: usecase.ProposalSummary{
			Total: 2,
			ByStatus: map[domain.ProposalStatus]int{
				domain.ProposalStatusPending:  1,
				domain.ProposalStatusExecuted: 1,
			},
		},
	}
	require.NoError(t, r.RenderList(result))
	assert.Contains(t, out.String(), "Proposals of Familia")
	assert.Contains(t, out.String(), "0.5 ETH → 0x0000…0003")
	assert.Contains(t, out.String(), "+ bob")
	assert.Contains(t, out.String(), "1/2 (0 against)")
	assert.Contains(t, out.String(), "Total: 2 (1 Pending, 1 Executed)")
}

func TestApplyRenderer(t *testing.T) {
	book := testBook(t)
	var out bytes.Buffer
	id := uint64(0)

	result := &usecase.ApplyScriptResult{
		Steps: []usecase.StepResult{
			{Index: 1, Op: "withdraw", ProposalID: &id, Logs: []domain.EventLog{
				{Sequence: 3, Event: &domain.ProposalCreatedEvent{ProposalID: 0, Proposer: alice}},
			}},
			{Index: 2, Op: "vote", Err: domain.ErrAlreadyVoted},
		},
		Failed: 1,
	}
	require.NoError(t, NewApplyRenderer(&out, book).Render(result))
	assert.Contains(t, out.String(), "✓ [1] withdraw #0")
	assert.Contains(t, out.String(), "#0 Withdrawal by alice")
	assert.Contains(t, out.String(), "✗ [2] vote: already voted")
	assert.Contains(t, out.String(), "1 steps applied, 1 events emitted, 1 failed")
}

func TestRenderJSON(t *testing.T) {
	var out bytes.Buffer
	p := NewProposalJSON(&vault.ProposalInfo{
		ID:        2,
		Type:      domain.ProposalTypeWithdrawal,
		Recipient: shop,
		Amount:    big.NewInt(1500),
	})
	require.NoError(t, RenderJSON(&out, p))
	assert.Contains(t, out.String(), `"type": "WITHDRAWAL"`)
	assert.Contains(t, out.String(), `"status": "PENDING"`)
	assert.Contains(t, out.String(), `"wei": "1500"`)
	assert.Contains(t, out.String(), `"votesFor": []`)
	assert.NotContains(t, out.String(), "newMember")
}
