package vault

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// Record snapshots the vault for persistence
func (v *Vault) Record() *models.VaultRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()

	rec := &models.VaultRecord{
		Address:   v.address,
		Name:      v.name,
		Members:   slices.Clone(v.members),
		Balance:   v.funds.balance.String(),
		Sequence:  v.sequence,
		Proposals: make([]*models.ProposalRecord, len(v.proposals)),
	}
	for i, p := range v.proposals {
		pr := &models.ProposalRecord{
			ID:           p.ID,
			Type:         p.Action.Type(),
			Proposer:     p.Proposer,
			Description:  p.Description,
			VotesFor:     p.VotesFor(),
			VotesAgainst: p.VotesAgainst(),
			Status:       p.Status,
		}
		switch action := p.Action.(type) {
		case Withdrawal:
			pr.Recipient = action.Recipient
			pr.Amount = action.Amount.String()
		case AddMember:
			pr.NewMember = action.NewMember
		}
		rec.Proposals[i] = pr
	}
	return rec
}

// Record snapshots the registry and all of its vaults
func (r *Registry) Record() *models.RegistryRecord {
	r.mu.RLock()
	vaults := slices.Clone(r.vaults)
	rec := &models.RegistryRecord{
		Address:  r.address,
		Nonce:    r.nonce,
		Sequence: r.sequence,
	}
	r.mu.RUnlock()

	rec.Vaults = lo.Map(vaults, func(v *Vault, _ int) *models.VaultRecord {
		return v.Record()
	})
	return rec
}

// RestoreRegistry rebuilds a registry from its snapshot, checking every
// vault invariant on the way in.
func RestoreRegistry(rec *models.RegistryRecord, transferer Transferer, emitter Emitter) (*Registry, error) {
	r := NewRegistry(rec.Address, transferer, emitter)
	r.nonce = rec.Nonce
	r.sequence = rec.Sequence

	for _, vr := range rec.Vaults {
		if _, dup := r.byHandle[vr.Address]; dup {
			return nil, fmt.Errorf("duplicate vault %s in snapshot", vr.Address.Hex())
		}
		v, err := restoreVault(vr, transferer, r.emitter)
		if err != nil {
			return nil, fmt.Errorf("vault %s: %w", vr.Address.Hex(), err)
		}
		r.register(v)
	}
	if uint64(len(r.vaults)) > r.nonce {
		return nil, fmt.Errorf("snapshot nonce %d below vault count %d", r.nonce, len(r.vaults))
	}
	return r, nil
}

func restoreVault(rec *models.VaultRecord, transferer Transferer, emitter Emitter) (*Vault, error) {
	if err := ValidateMembers(rec.Members); err != nil {
		return nil, err
	}
	balance, err := parseWei(rec.Balance)
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}

	v := newVault(rec.Address, rec.Name, rec.Members, transferer, emitter)
	v.sequence = rec.Sequence
	v.funds.balance.Set(balance)

	for i, pr := range rec.Proposals {
		if pr.ID != uint64(i) {
			return nil, fmt.Errorf("proposal at position %d has id %d", i, pr.ID)
		}
		p, err := restoreProposal(pr)
		if err != nil {
			return nil, fmt.Errorf("proposal %d: %w", pr.ID, err)
		}
		for voter := range p.ballots {
			if !v.isMember(voter) {
				return nil, fmt.Errorf("proposal %d: voter %s is not a member", pr.ID, voter.Hex())
			}
		}
		if w, ok := p.withdrawal(); ok && p.Status == domain.ProposalStatusPending {
			if err := v.funds.Reserve(w.Amount); err != nil {
				return nil, fmt.Errorf("proposal %d: %w", pr.ID, err)
			}
		}
		v.proposals = append(v.proposals, p)
	}

	if err := v.checkInvariants(); err != nil {
		return nil, err
	}
	return v, nil
}

func restoreProposal(pr *models.ProposalRecord) (*Proposal, error) {
	var action Action
	switch pr.Type {
	case domain.ProposalTypeWithdrawal:
		amount, err := parseWei(pr.Amount)
		if err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
		if !isPositive(amount) {
			return nil, domain.ErrInvalidAmount
		}
		action = Withdrawal{Recipient: pr.Recipient, Amount: amount}
	case domain.ProposalTypeAddMember:
		action = AddMember{NewMember: pr.NewMember}
	default:
		return nil, fmt.Errorf("unknown proposal type %s", pr.Type)
	}

	p := &Proposal{
		ID:          pr.ID,
		Proposer:    pr.Proposer,
		Description: pr.Description,
		Action:      action,
		Status:      pr.Status,
		ballots:     make(map[common.Address]bool),
	}
	for _, voter := range pr.VotesFor {
		if err := p.castVote(voter, true); err != nil {
			return nil, fmt.Errorf("voter %s: %w", voter.Hex(), err)
		}
	}
	for _, voter := range pr.VotesAgainst {
		if err := p.castVote(voter, false); err != nil {
			return nil, fmt.Errorf("voter %s: %w", voter.Hex(), err)
		}
	}
	if !p.HasVoted(p.Proposer) || !p.ballots[p.Proposer] {
		return nil, fmt.Errorf("proposer %s has no vote in favor", p.Proposer.Hex())
	}
	return p, nil
}

// CheckInvariants verifies the accounting and voting invariants of the vault
func (v *Vault) CheckInvariants() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.checkInvariants()
}

func (v *Vault) checkInvariants() error {
	pending := lo.Filter(v.proposals, func(p *Proposal, _ int) bool {
		_, ok := p.withdrawal()
		return ok && p.Status == domain.ProposalStatusPending
	})
	expected := lo.Reduce(pending, func(sum *big.Int, p *Proposal, _ int) *big.Int {
		w, _ := p.withdrawal()
		return sum.Add(sum, w.Amount)
	}, new(big.Int))

	if expected.Cmp(v.funds.reserved) != 0 {
		return fmt.Errorf("reserved funds %s differ from pending withdrawals %s", v.funds.reserved, expected)
	}
	if v.funds.Available().Sign() < 0 {
		return fmt.Errorf("reserved funds %s exceed balance %s", v.funds.reserved, v.funds.balance)
	}
	for _, p := range v.proposals {
		overlap := lo.Intersect(p.votesFor, p.votesAgainst)
		if len(overlap) > 0 {
			return fmt.Errorf("proposal %d: %s voted on both sides", p.ID, overlap[0].Hex())
		}
	}
	return nil
}

func parseWei(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid wei amount %q", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("negative wei amount %q", s)
	}
	return n, nil
}
