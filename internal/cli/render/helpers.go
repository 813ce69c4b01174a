package render

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/pkg/units"
)

// Color styles shared by the renderers
var (
	nameStyle          = color.New(color.FgWhite, color.Bold)
	addressStyle       = color.New(color.FgWhite)
	labelStyle         = color.New(color.FgCyan)
	amountStyle        = color.New(color.FgGreen)
	faintStyle         = color.New(color.Faint)
	pendingStyle       = color.New(color.FgYellow)
	executedStyle      = color.New(color.FgGreen)
	rejectedStyle      = color.New(color.FgRed)
	sectionHeaderStyle = color.New(color.Bold, color.FgHiWhite)
)

var titleCaser = cases.Title(language.English)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// formatAddress renders an address with its account alias when one is known
func formatAddress(book *config.AddressBook, addr common.Address) string {
	if label := book.Label(addr); label != "" {
		return labelStyle.Sprint(label) + " " + faintStyle.Sprintf("(%s)", addr.Hex())
	}
	return addressStyle.Sprint(addr.Hex())
}

// shortAddress is the alias of addr, or its abbreviated hex
func shortAddress(book *config.AddressBook, addr common.Address) string {
	if label := book.Label(addr); label != "" {
		return label
	}
	hex := addr.Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}

func formatEther(wei *big.Int) string {
	return amountStyle.Sprint(units.FormatEtherWithUnit(wei))
}

// formatStatus renders a proposal status as "Pending", "Executed" or "Rejected"
func formatStatus(status domain.ProposalStatus) string {
	name := titleCaser.String(strings.ToLower(status.String()))
	switch status {
	case domain.ProposalStatusPending:
		return pendingStyle.Sprint(name)
	case domain.ProposalStatusExecuted:
		return executedStyle.Sprint(name)
	case domain.ProposalStatusRejected:
		return rejectedStyle.Sprint(name)
	default:
		return name
	}
}

// formatType renders a proposal type as "Withdrawal" or "Add Member"
func formatType(t domain.ProposalType) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(t.String(), "_", " ")))
}

// newTable returns a borderless table in the style of the list commands
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.Style().Format.Header = text.FormatDefault
	return t
}
