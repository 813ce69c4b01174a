package vault

import (
	"math/big"
	"slices"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// Action is the effect a proposal applies once approved
type Action interface {
	Type() domain.ProposalType
	isAction()
}

// Withdrawal moves Amount wei out of the vault to Recipient
type Withdrawal struct {
	Recipient common.Address
	Amount    *big.Int
}

func (Withdrawal) Type() domain.ProposalType { return domain.ProposalTypeWithdrawal }
func (Withdrawal) isAction()                 {}

// AddMember appends NewMember to the member set
type AddMember struct {
	NewMember common.Address
}

func (AddMember) Type() domain.ProposalType { return domain.ProposalTypeAddMember }
func (AddMember) isAction()                 {}

// Outcome is the result of evaluating a proposal tally
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeApproved
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeRejected:
		return "rejected"
	default:
		return "undecided"
	}
}

// RequiredVotes is the strict majority of memberCount
func RequiredVotes(memberCount int) int {
	return memberCount/2 + 1
}

// Proposal is a pending or decided action with its votes
type Proposal struct {
	ID          uint64
	Proposer    common.Address
	Description string
	Action      Action
	Status      domain.ProposalStatus

	votesFor     []common.Address
	votesAgainst []common.Address
	ballots      map[common.Address]bool
}

// newProposal creates a pending proposal with the proposer's implicit vote in favor
func newProposal(id uint64, proposer common.Address, description string, action Action) *Proposal {
	p := &Proposal{
		ID:          id,
		Proposer:    proposer,
		Description: description,
		Action:      action,
		Status:      domain.ProposalStatusPending,
		ballots:     make(map[common.Address]bool),
	}
	p.record(proposer, true)
	return p
}

// HasVoted reports whether addr has voted on this proposal
func (p *Proposal) HasVoted(addr common.Address) bool {
	_, ok := p.ballots[addr]
	return ok
}

// VotesFor returns the members that voted in favor, in vote order
func (p *Proposal) VotesFor() []common.Address {
	return slices.Clone(p.votesFor)
}

// VotesAgainst returns the members that voted against, in vote order
func (p *Proposal) VotesAgainst() []common.Address {
	return slices.Clone(p.votesAgainst)
}

func (p *Proposal) castVote(voter common.Address, inFavor bool) error {
	if p.HasVoted(voter) {
		return domain.ErrAlreadyVoted
	}
	p.record(voter, inFavor)
	return nil
}

func (p *Proposal) record(voter common.Address, inFavor bool) {
	p.ballots[voter] = inFavor
	if inFavor {
		p.votesFor = append(p.votesFor, voter)
	} else {
		p.votesAgainst = append(p.votesAgainst, voter)
	}
}

// Tally evaluates the votes against the live member count. A proposal is
// approved at a strict majority of "for" votes and rejected as soon as the
// remaining un-voted members can no longer lift it to that majority.
func (p *Proposal) Tally(memberCount int) Outcome {
	if p.Status != domain.ProposalStatusPending {
		return OutcomeUndecided
	}

	required := RequiredVotes(memberCount)
	inFavor := len(p.votesFor)
	if inFavor >= required {
		return OutcomeApproved
	}

	remaining := max(memberCount-inFavor-len(p.votesAgainst), 0)
	if inFavor+remaining < required {
		return OutcomeRejected
	}
	return OutcomeUndecided
}

// withdrawal returns the withdrawal action if this is a withdrawal proposal
func (p *Proposal) withdrawal() (Withdrawal, bool) {
	w, ok := p.Action.(Withdrawal)
	return w, ok
}
