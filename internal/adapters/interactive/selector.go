package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/internal/vault"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectVault selects a vault from a list
func (s *SelectorAdapter) SelectVault(ctx context.Context, vaults []*vault.Info, prompt string) (*vault.Info, error) {
	if len(vaults) == 0 {
		return nil, fmt.Errorf("no vaults provided for selection")
	}
	if len(vaults) == 1 {
		return vaults[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	index, err := s.run(prompt, formatVaultOptions(vaults))
	if err != nil {
		return nil, err
	}
	return vaults[index], nil
}

// SelectProposal selects a proposal from a list
func (s *SelectorAdapter) SelectProposal(ctx context.Context, proposals []*vault.ProposalInfo, prompt string) (*vault.ProposalInfo, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("no proposals provided for selection")
	}
	if len(proposals) == 1 {
		return proposals[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	index, err := s.run(prompt, formatProposalOptions(proposals, s.config.Accounts))
	if err != nil {
		return nil, err
	}
	return proposals[index], nil
}

// SelectMembers lets the user tick the accounts that form a new vault
func (s *SelectorAdapter) SelectMembers(ctx context.Context, accounts []config.Account, prompt string) ([]common.Address, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(accounts) < 2 {
		return nil, fmt.Errorf("at least 2 accounts are needed, found %d in the [accounts] section", len(accounts))
	}

	indices, err := runMemberSelect(accounts, prompt)
	if err != nil {
		return nil, err
	}

	members := make([]common.Address, 0, len(indices))
	for _, i := range indices {
		members = append(members, accounts[i].Address)
	}
	return members, nil
}

func (s *SelectorAdapter) run(prompt string, options []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

// formatVaultOptions renders "Name (0xabc…) 3 members, 1.5 ETH available"
func formatVaultOptions(vaults []*vault.Info) []string {
	options := make([]string, len(vaults))
	for i, v := range vaults {
		name := color.New(color.FgWhite, color.Bold).Sprint(v.Name)
		addr := color.New(color.FgBlue).Sprint(v.Address.Hex())
		options[i] = fmt.Sprintf("%s (%s) %d members, %s available",
			name, addr, len(v.Members), units.FormatEtherWithUnit(v.Available))
	}
	return options
}

// formatProposalOptions renders "#id type: description [votes]"
func formatProposalOptions(proposals []*vault.ProposalInfo, book *config.AddressBook) []string {
	options := make([]string, len(proposals))
	for i, p := range proposals {
		var target string
		if p.Type == domain.ProposalTypeWithdrawal {
			target = fmt.Sprintf("%s to %s", units.FormatEtherWithUnit(p.Amount), addressLabel(book, p.Recipient))
		} else {
			target = addressLabel(book, p.NewMember)
		}

		parts := []string{
			color.New(color.FgWhite, color.Bold).Sprintf("#%d", p.ID),
			color.New(color.FgYellow).Sprint(p.Type.String()),
			target,
		}
		if p.Description != "" {
			parts = append(parts, color.New(color.FgCyan).Sprintf("%q", p.Description))
		}
		parts = append(parts, fmt.Sprintf("[%d/%d for]", len(p.VotesFor), p.RequiredVotes))
		options[i] = strings.Join(parts, " ")
	}
	return options
}

func addressLabel(book *config.AddressBook, addr common.Address) string {
	if label := book.Label(addr); label != "" {
		return label
	}
	return addr.Hex()
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

var (
	_ usecase.VaultSelector    = (*SelectorAdapter)(nil)
	_ usecase.ProposalSelector = (*SelectorAdapter)(nil)
	_ usecase.MemberSelector   = (*SelectorAdapter)(nil)
)
