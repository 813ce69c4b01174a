package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coperacha/coperacha-cli/internal/domain"
)

func TestLogCodec_EncodeDecode(t *testing.T) {
	codec, err := NewLogCodec()
	require.NoError(t, err)

	vaultAddr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	alice := common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob := common.HexToAddress("0x00000000000000000000000000000000000000b2")

	events := []domain.ParsedEvent{
		&domain.VaultCreatedEvent{Vault: vaultAddr, Name: "Familia", Members: []common.Address{alice, bob}},
		&domain.DepositMadeEvent{Depositor: alice, Amount: big.NewInt(1500)},
		&domain.ProposalCreatedEvent{ProposalID: 7, ProposalType: domain.ProposalTypeAddMember, Proposer: bob},
		&domain.VoteCastedEvent{ProposalID: 7, Voter: alice, InFavor: true},
		&domain.VoteCastedEvent{ProposalID: 8, Voter: bob, InFavor: false},
		&domain.ProposalExecutedEvent{ProposalID: 7},
		&domain.ProposalRejectedEvent{ProposalID: 8},
		&domain.WithdrawalExecutedEvent{Recipient: bob, Amount: big.NewInt(42)},
		&domain.MemberAddedEvent{NewMember: bob},
	}

	for i, ev := range events {
		t.Run(ev.ContractEventName(), func(t *testing.T) {
			in := domain.EventLog{
				Emitter:  vaultAddr,
				Sequence: 3,
				Index:    uint(i),
				TxHash:   common.HexToHash("0x1234"),
				Event:    ev,
			}

			encoded, err := codec.Encode(in)
			require.NoError(t, err)
			assert.Equal(t, vaultAddr, encoded.Address)
			assert.Equal(t, uint64(3), encoded.BlockNumber)

			id, err := codec.EventID(domain.EventType(ev.ContractEventName()))
			require.NoError(t, err)
			assert.Equal(t, id, encoded.Topics[0])

			out, err := codec.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestLogCodec_TopicLayout(t *testing.T) {
	codec, err := NewLogCodec()
	require.NoError(t, err)

	voter := common.HexToAddress("0x00000000000000000000000000000000000000b2")
	log, err := codec.Encode(domain.EventLog{Event: &domain.VoteCastedEvent{ProposalID: 5, Voter: voter, InFavor: true}})
	require.NoError(t, err)

	require.Len(t, log.Topics, 3)
	assert.Equal(t, crypto.Keccak256Hash([]byte("VoteCasted(uint256,address,bool)")), log.Topics[0])
	assert.Equal(t, common.BigToHash(big.NewInt(5)), log.Topics[1])
	assert.Equal(t, common.BytesToHash(voter.Bytes()), log.Topics[2])
	assert.Len(t, log.Data, 32)
}

func TestLogCodec_DecodeErrors(t *testing.T) {
	codec, err := NewLogCodec()
	require.NoError(t, err)

	_, err = codec.Decode(&types.Log{})
	assert.ErrorContains(t, err, "no topics")

	_, err = codec.Decode(&types.Log{Topics: []common.Hash{crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))}})
	assert.ErrorContains(t, err, "unknown event signature")

	id, _ := codec.EventID(domain.EventTypeDepositMade)
	_, err = codec.Decode(&types.Log{Topics: []common.Hash{id, {}}, Data: []byte{1, 2}})
	assert.Error(t, err)
}
