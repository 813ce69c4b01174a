package domain

import (
	"fmt"
	"strings"
)

// ProposalType identifies the proposal variant. Values match the on-chain enum.
type ProposalType uint8

const (
	ProposalTypeWithdrawal ProposalType = 0
	ProposalTypeAddMember  ProposalType = 1
)

func (t ProposalType) String() string {
	switch t {
	case ProposalTypeWithdrawal:
		return "WITHDRAWAL"
	case ProposalTypeAddMember:
		return "ADD_MEMBER"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// MarshalText encodes the type by name
func (t ProposalType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes the type from its name
func (t *ProposalType) UnmarshalText(b []byte) error {
	parsed, err := ParseProposalType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseProposalType parses a type name; "add-member" and "withdraw" are accepted too
func ParseProposalType(s string) (ProposalType, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_") {
	case "WITHDRAWAL", "WITHDRAW":
		return ProposalTypeWithdrawal, nil
	case "ADD_MEMBER":
		return ProposalTypeAddMember, nil
	default:
		return 0, fmt.Errorf("unknown proposal type %q", s)
	}
}

// ProposalStatus represents the lifecycle state of a proposal.
// PENDING moves to EXECUTED or REJECTED and never back.
type ProposalStatus uint8

const (
	ProposalStatusPending  ProposalStatus = 0
	ProposalStatusExecuted ProposalStatus = 1
	ProposalStatusRejected ProposalStatus = 2
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusPending:
		return "PENDING"
	case ProposalStatusExecuted:
		return "EXECUTED"
	case ProposalStatusRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// IsTerminal reports whether the status can no longer change
func (s ProposalStatus) IsTerminal() bool {
	return s == ProposalStatusExecuted || s == ProposalStatusRejected
}

func (s ProposalStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ProposalStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseProposalStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseProposalStatus parses a status name, case-insensitively
func ParseProposalStatus(s string) (ProposalStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return ProposalStatusPending, nil
	case "EXECUTED":
		return ProposalStatusExecuted, nil
	case "REJECTED":
		return ProposalStatusRejected, nil
	default:
		return 0, fmt.Errorf("unknown proposal status %q", s)
	}
}
