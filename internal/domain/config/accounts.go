package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a named address from the [accounts] section
type Account struct {
	Name    string
	Address common.Address
}

// AddressBook resolves account aliases to addresses and back
type AddressBook struct {
	byName    map[string]common.Address
	byAddress map[common.Address]string
}

// NewAddressBook builds an address book from alias → hex address entries
func NewAddressBook(entries map[string]string) (*AddressBook, error) {
	book := &AddressBook{
		byName:    make(map[string]common.Address, len(entries)),
		byAddress: make(map[common.Address]string, len(entries)),
	}
	for name, hex := range entries {
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("account %s: invalid address %q", name, hex)
		}
		addr := common.HexToAddress(hex)
		key := strings.ToLower(name)
		book.byName[key] = addr
		if existing, ok := book.byAddress[addr]; !ok || name < existing {
			book.byAddress[addr] = name
		}
	}
	return book, nil
}

// Resolve turns an alias or a hex address into an address
func (b *AddressBook) Resolve(ref string) (common.Address, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return common.Address{}, fmt.Errorf("empty address")
	}
	if b != nil {
		if addr, ok := b.byName[strings.ToLower(ref)]; ok {
			return addr, nil
		}
	}
	if !common.IsHexAddress(ref) {
		return common.Address{}, fmt.Errorf("%q is neither an address nor a known account", ref)
	}
	return common.HexToAddress(ref), nil
}

// Label returns the alias of addr, or "" if it has none
func (b *AddressBook) Label(addr common.Address) string {
	if b == nil {
		return ""
	}
	return b.byAddress[addr]
}

// Accounts returns all named accounts sorted by name
func (b *AddressBook) Accounts() []Account {
	if b == nil {
		return nil
	}
	accounts := make([]Account, 0, len(b.byName))
	for addr, name := range b.byAddress {
		accounts = append(accounts, Account{Name: name, Address: addr})
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})
	return accounts
}
