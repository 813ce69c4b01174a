package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimals between wei and ether
const EtherDecimals = 18

// ParseAmount parses a user supplied amount into wei. Plain numbers are
// ether ("1.5"); a "wei" or "gwei" suffix selects that unit ("250gwei").
func ParseAmount(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	exp := int32(EtherDecimals)

	switch {
	case strings.HasSuffix(s, "gwei"):
		s, exp = strings.TrimSpace(strings.TrimSuffix(s, "gwei")), 9
	case strings.HasSuffix(s, "wei"):
		s, exp = strings.TrimSpace(strings.TrimSuffix(s, "wei")), 0
	case strings.HasSuffix(s, "eth"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "eth"))
	}

	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	wei := d.Shift(exp)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("amount %q has more precision than 1 wei", s)
	}
	return wei.BigInt(), nil
}

// FormatEther renders wei as an ether amount without trailing zeros
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -EtherDecimals).String()
}

// FormatEtherWithUnit renders wei as "<amount> ETH"
func FormatEtherWithUnit(wei *big.Int) string {
	return FormatEther(wei) + " ETH"
}
