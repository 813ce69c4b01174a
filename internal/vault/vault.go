// Package vault implements the shared custody vault: fund reservation
// accounting, the proposal voting engine and the registry of vaults.
package vault

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"sync"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MinMembers is the minimum member count at vault creation
const MinMembers = 2

// Transferer moves funds out of a vault. Implementations must not call
// back into the vault.
type Transferer interface {
	Transfer(ctx context.Context, from, to common.Address, amount *big.Int) error
}

// Emitter receives event logs once an operation has been applied
type Emitter interface {
	Emit(log domain.EventLog)
}

type nopEmitter struct{}

func (nopEmitter) Emit(domain.EventLog) {}

// memberListener is notified when a member joins a vault
type memberListener interface {
	memberAdded(vault, member common.Address)
}

// Info is the summary returned by getVaultInfo
type Info struct {
	Address       common.Address
	Name          string
	Members       []common.Address
	Balance       *big.Int
	Reserved      *big.Int
	Available     *big.Int
	ProposalCount uint64
	RequiredVotes int
}

// ProposalInfo is a read-only view of a proposal
type ProposalInfo struct {
	ID            uint64
	Type          domain.ProposalType
	Proposer      common.Address
	Description   string
	Recipient     common.Address
	Amount        *big.Int
	NewMember     common.Address
	VotesFor      []common.Address
	VotesAgainst  []common.Address
	Status        domain.ProposalStatus
	RequiredVotes int
}

// Vault is a pool of funds controlled by majority vote of its members.
// Every mutation runs under the vault lock, so operations are serialized
// and each one either applies fully or returns an error with no effect.
type Vault struct {
	mu sync.RWMutex

	address   common.Address
	name      string
	members   []common.Address
	memberSet map[common.Address]struct{}
	funds     *Funds
	proposals []*Proposal
	sequence  uint64

	transferer Transferer
	emitter    Emitter
	listener   memberListener
}

func newVault(address common.Address, name string, members []common.Address, transferer Transferer, emitter Emitter) *Vault {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	v := &Vault{
		address:    address,
		name:       name,
		memberSet:  make(map[common.Address]struct{}, len(members)),
		funds:      NewFunds(),
		transferer: transferer,
		emitter:    emitter,
	}
	for _, m := range members {
		v.addMember(m)
	}
	return v
}

// ValidateMembers checks a creation member list: at least MinMembers,
// no zero address and no duplicates.
func ValidateMembers(members []common.Address) error {
	if len(members) < MinMembers {
		return fmt.Errorf("%w: need at least %d members, got %d", domain.ErrInvalidMembers, MinMembers, len(members))
	}
	seen := make(map[common.Address]struct{}, len(members))
	for _, m := range members {
		if m == (common.Address{}) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidMembers, domain.ErrZeroAddress)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("%w: duplicate member %s", domain.ErrInvalidMembers, m.Hex())
		}
		seen[m] = struct{}{}
	}
	return nil
}

// Address returns the vault handle
func (v *Vault) Address() common.Address {
	return v.address
}

// Name returns the display name
func (v *Vault) Name() string {
	return v.name
}

// Members returns the members in insertion order
func (v *Vault) Members() []common.Address {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.members)
}

// IsMember reports whether addr is a current member
func (v *Vault) IsMember(addr common.Address) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.isMember(addr)
}

func (v *Vault) Balance() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.funds.Balance()
}

func (v *Vault) ReservedFunds() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.funds.Reserved()
}

func (v *Vault) AvailableBalance() *big.Int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.funds.Available()
}

func (v *Vault) ProposalCount() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return uint64(len(v.proposals))
}

// RequiredVotes is the quorum against the current member count
func (v *Vault) RequiredVotes() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return RequiredVotes(len(v.members))
}

// Info returns the vault summary in a single consistent read
func (v *Vault) Info() *Info {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return &Info{
		Address:       v.address,
		Name:          v.name,
		Members:       slices.Clone(v.members),
		Balance:       v.funds.Balance(),
		Reserved:      v.funds.Reserved(),
		Available:     v.funds.Available(),
		ProposalCount: uint64(len(v.proposals)),
		RequiredVotes: RequiredVotes(len(v.members)),
	}
}

// Proposal returns a view of a single proposal
func (v *Vault) Proposal(id uint64) (*ProposalInfo, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	p, err := v.proposal(id)
	if err != nil {
		return nil, err
	}
	return v.proposalInfo(p), nil
}

// Proposals returns views of all proposals in id order
func (v *Vault) Proposals() []*ProposalInfo {
	v.mu.RLock()
	defer v.mu.RUnlock()
	infos := make([]*ProposalInfo, len(v.proposals))
	for i, p := range v.proposals {
		infos[i] = v.proposalInfo(p)
	}
	return infos
}

// HasVoted reports whether voter has voted on proposal id
func (v *Vault) HasVoted(id uint64, voter common.Address) (bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	p, err := v.proposal(id)
	if err != nil {
		return false, err
	}
	return p.HasVoted(voter), nil
}

// Deposit adds funds to the vault. Any address may deposit.
func (v *Vault) Deposit(ctx context.Context, from common.Address, amount *big.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.funds.Deposit(amount); err != nil {
		return err
	}

	op := v.begin()
	op.emit(&domain.DepositMadeEvent{Depositor: from, Amount: new(big.Int).Set(amount)})
	op.commit()
	return nil
}

// ProposeWithdrawal creates a withdrawal proposal and reserves its amount
func (v *Vault) ProposeWithdrawal(ctx context.Context, caller common.Address, description string, recipient common.Address, amount *big.Int) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isMember(caller) {
		return 0, domain.ErrNotAMember
	}
	if !isPositive(amount) {
		return 0, domain.ErrInvalidAmount
	}
	if err := v.funds.Reserve(amount); err != nil {
		return 0, err
	}

	return v.submit(ctx, caller, description, Withdrawal{
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
	})
}

// ProposeAddMember creates a proposal to add newMember to the vault
func (v *Vault) ProposeAddMember(ctx context.Context, caller common.Address, description string, newMember common.Address) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isMember(caller) {
		return 0, domain.ErrNotAMember
	}
	if newMember == (common.Address{}) {
		return 0, domain.ErrZeroAddress
	}
	if v.isMember(newMember) {
		return 0, domain.ErrAlreadyAMember
	}

	return v.submit(ctx, caller, description, AddMember{NewMember: newMember})
}

// submit appends the proposal with the proposer's vote and evaluates it.
// An execution failure here keeps the proposal pending and is reported
// alongside the new id.
func (v *Vault) submit(ctx context.Context, proposer common.Address, description string, action Action) (uint64, error) {
	p := newProposal(uint64(len(v.proposals)), proposer, description, action)
	v.proposals = append(v.proposals, p)

	op := v.begin()
	op.emit(&domain.ProposalCreatedEvent{
		ProposalID:   p.ID,
		ProposalType: action.Type(),
		Proposer:     proposer,
	})
	err := v.evaluate(ctx, op, p)
	op.commit()
	return p.ID, err
}

// Vote records a member's vote and evaluates the proposal. When the vote
// approves a withdrawal whose transfer fails, the vote is kept, the
// proposal stays pending with its reservation and ErrTransferFailed is
// returned; ExecuteProposal retries it.
func (v *Vault) Vote(ctx context.Context, caller common.Address, id uint64, inFavor bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isMember(caller) {
		return domain.ErrNotAMember
	}
	p, err := v.proposal(id)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalStatusPending {
		return domain.ErrProposalNotPending
	}
	if err := p.castVote(caller, inFavor); err != nil {
		return err
	}

	op := v.begin()
	op.emit(&domain.VoteCastedEvent{ProposalID: id, Voter: caller, InFavor: inFavor})
	err = v.evaluate(ctx, op, p)
	op.commit()
	return err
}

// ExecuteProposal re-runs evaluation of a pending proposal. It is the retry
// path for an approved withdrawal whose transfer previously failed.
func (v *Vault) ExecuteProposal(ctx context.Context, caller common.Address, id uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.isMember(caller) {
		return domain.ErrNotAMember
	}
	p, err := v.proposal(id)
	if err != nil {
		return err
	}
	if p.Status != domain.ProposalStatusPending {
		return domain.ErrProposalNotPending
	}

	outcome := p.Tally(len(v.members))
	if outcome == OutcomeUndecided {
		return fmt.Errorf("%w: %d of %d votes", domain.ErrQuorumNotReached, len(p.votesFor), RequiredVotes(len(v.members)))
	}

	op := v.begin()
	err = v.apply(ctx, op, p, outcome)
	op.commit()
	return err
}

// evaluate runs the tally and applies the resulting transition
func (v *Vault) evaluate(ctx context.Context, op *operation, p *Proposal) error {
	return v.apply(ctx, op, p, p.Tally(len(v.members)))
}

func (v *Vault) apply(ctx context.Context, op *operation, p *Proposal, outcome Outcome) error {
	switch outcome {
	case OutcomeApproved:
		return v.execute(ctx, op, p)
	case OutcomeRejected:
		return v.reject(op, p)
	default:
		return nil
	}
}

// execute applies the proposal effect and marks it executed. A failed
// transfer leaves status and reservation untouched.
func (v *Vault) execute(ctx context.Context, op *operation, p *Proposal) error {
	switch action := p.Action.(type) {
	case Withdrawal:
		if err := v.funds.CanSettle(action.Amount); err != nil {
			return fmt.Errorf("proposal %d: %w", p.ID, err)
		}
		if err := v.transferer.Transfer(ctx, v.address, action.Recipient, action.Amount); err != nil {
			return &domain.TransferError{
				ProposalID: p.ID,
				Recipient:  action.Recipient,
				Amount:     new(big.Int).Set(action.Amount),
				Err:        err,
			}
		}
		if err := v.funds.Settle(action.Amount); err != nil {
			return fmt.Errorf("proposal %d: %w", p.ID, err)
		}
		op.emit(&domain.WithdrawalExecutedEvent{Recipient: action.Recipient, Amount: new(big.Int).Set(action.Amount)})

	case AddMember:
		if !v.isMember(action.NewMember) {
			v.addMember(action.NewMember)
			op.emit(&domain.MemberAddedEvent{NewMember: action.NewMember})
		}

	default:
		return fmt.Errorf("proposal %d: unsupported action %T", p.ID, p.Action)
	}

	p.Status = domain.ProposalStatusExecuted
	op.emit(&domain.ProposalExecutedEvent{ProposalID: p.ID})
	return nil
}

func (v *Vault) reject(op *operation, p *Proposal) error {
	if w, ok := p.withdrawal(); ok {
		if err := v.funds.Release(w.Amount); err != nil {
			return fmt.Errorf("proposal %d: %w", p.ID, err)
		}
	}
	p.Status = domain.ProposalStatusRejected
	op.emit(&domain.ProposalRejectedEvent{ProposalID: p.ID})
	return nil
}

func (v *Vault) proposal(id uint64) (*Proposal, error) {
	if id >= uint64(len(v.proposals)) {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownProposal, id)
	}
	return v.proposals[id], nil
}

func (v *Vault) proposalInfo(p *Proposal) *ProposalInfo {
	info := &ProposalInfo{
		ID:            p.ID,
		Type:          p.Action.Type(),
		Proposer:      p.Proposer,
		Description:   p.Description,
		Amount:        new(big.Int),
		VotesFor:      p.VotesFor(),
		VotesAgainst:  p.VotesAgainst(),
		Status:        p.Status,
		RequiredVotes: RequiredVotes(len(v.members)),
	}
	switch action := p.Action.(type) {
	case Withdrawal:
		info.Recipient = action.Recipient
		info.Amount = new(big.Int).Set(action.Amount)
	case AddMember:
		info.NewMember = action.NewMember
	}
	return info
}

func (v *Vault) isMember(addr common.Address) bool {
	_, ok := v.memberSet[addr]
	return ok
}

func (v *Vault) addMember(addr common.Address) {
	v.members = append(v.members, addr)
	v.memberSet[addr] = struct{}{}
	if v.listener != nil {
		v.listener.memberAdded(v.address, addr)
	}
}

// operation buffers the logs of one mutation so they reach the emitter
// in order and under a single sequence number.
type operation struct {
	vault *Vault
	logs  []domain.ParsedEvent
}

func (v *Vault) begin() *operation {
	return &operation{vault: v}
}

func (op *operation) emit(ev domain.ParsedEvent) {
	op.logs = append(op.logs, ev)
}

func (op *operation) commit() {
	if len(op.logs) == 0 {
		return
	}
	v := op.vault
	v.sequence++
	txHash := OperationHash(v.address, v.sequence)
	for i, ev := range op.logs {
		v.emitter.Emit(domain.EventLog{
			Emitter:  v.address,
			Sequence: v.sequence,
			Index:    uint(i),
			TxHash:   txHash,
			Event:    ev,
		})
	}
	op.logs = nil
}

// OperationHash identifies the operation that emitted a group of logs
func OperationHash(emitter common.Address, sequence uint64) common.Hash {
	return crypto.Keccak256Hash(emitter.Bytes(), new(big.Int).SetUint64(sequence).Bytes())
}
