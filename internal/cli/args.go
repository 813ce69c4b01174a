package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/coperacha/coperacha-cli/internal/domain/config"
)

// parseAccount resolves an account alias or hex address
func parseAccount(book *config.AddressBook, ref string) (common.Address, error) {
	addr, err := book.Resolve(ref)
	if err != nil {
		return common.Address{}, err
	}
	return addr, nil
}

// parseAccounts resolves each reference in order
func parseAccounts(book *config.AddressBook, refs []string) ([]common.Address, error) {
	addrs := make([]common.Address, 0, len(refs))
	for _, ref := range refs {
		addr, err := parseAccount(book, ref)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

// parseVaultAddress parses a vault handle given as hex
func parseVaultAddress(ref string) (common.Address, error) {
	ref = strings.TrimSpace(ref)
	if !common.IsHexAddress(ref) {
		return common.Address{}, fmt.Errorf("invalid vault address %q", ref)
	}
	return common.HexToAddress(ref), nil
}

// parseProposalID accepts "3" or "#3"
func parseProposalID(ref string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(ref), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", ref)
	}
	return id, nil
}
